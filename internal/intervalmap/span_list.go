// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intervalmap

import (
	"slices"
	"sort"
)

// SpanList is an ordered slice of non-overlapping intervals. It satisfies the
// same contract as Map but places each new span by classifying it against its
// predecessor, the last span whose start is <= the new span's start.
//
// The zero value is an empty list ready to use.
type SpanList[V any] struct {
	spans []Interval[V]
}

// InsertSpan assigns value to [start, limit), overwriting existing coverage.
// It panics if start >= limit.
func (l *SpanList[V]) InsertSpan(start, limit int, value V) {
	assertValidInterval(start, limit)
	i := l.trimSuccessors(start, limit)
	s := Interval[V]{Start: start, Limit: limit, Value: value}

	if i == 0 || l.spans[i-1].Limit <= start {
		// No overlap with the predecessor.
		l.spans = slices.Insert(l.spans, i, s)
		return
	}
	p := &l.spans[i-1]
	switch {
	case p.Start == start && p.Limit == limit:
		p.Value = value
	case p.Start == start && limit < p.Limit:
		p.Start = limit
		l.spans = slices.Insert(l.spans, i-1, s)
	case p.Start < start && limit < p.Limit:
		right := Interval[V]{Start: limit, Limit: p.Limit, Value: p.Value}
		p.Limit = start
		l.spans = slices.Insert(l.spans, i, s, right)
	case p.Start < start:
		// The new span reaches or passes the predecessor's end.
		p.Limit = start
		l.spans = slices.Insert(l.spans, i, s)
	default:
		// Same start, and the new span extends past the predecessor.
		*p = s
	}
}

// RemoveSpan clears [start, limit). It panics if start >= limit.
func (l *SpanList[V]) RemoveSpan(start, limit int) {
	assertValidInterval(start, limit)
	i := l.trimSuccessors(start, limit)
	if i == 0 || l.spans[i-1].Limit <= start {
		return
	}
	p := &l.spans[i-1]
	switch {
	case p.Start < start && limit < p.Limit:
		right := Interval[V]{Start: limit, Limit: p.Limit, Value: p.Value}
		p.Limit = start
		l.spans = slices.Insert(l.spans, i, right)
	case p.Start < start:
		p.Limit = start
	case limit < p.Limit:
		p.Start = limit
	default:
		l.spans = slices.Delete(l.spans, i-1, i)
	}
}

// trimSuccessors removes or truncates the spans that start strictly inside
// (start, limit) and returns the index of the first span whose start exceeds
// start; the predecessor, if any, sits just before it.
func (l *SpanList[V]) trimSuccessors(start, limit int) int {
	i := sort.Search(len(l.spans), func(j int) bool { return l.spans[j].Start > start })
	j := i
	for j < len(l.spans) && l.spans[j].Start < limit {
		j++
	}
	if j > i && l.spans[j-1].Limit > limit {
		l.spans[j-1].Start = limit
		j--
	}
	l.spans = slices.Delete(l.spans, i, j)
	return i
}

// Lookup returns the value of the span containing key.
func (l *SpanList[V]) Lookup(key int) (V, bool) {
	i := sort.Search(len(l.spans), func(j int) bool { return l.spans[j].Start > key })
	if i > 0 && key < l.spans[i-1].Limit {
		return l.spans[i-1].Value, true
	}
	var zero V
	return zero, false
}

// Spans returns the list's spans in ascending order. The returned slice must
// not be modified.
func (l *SpanList[V]) Spans() []Interval[V] {
	return l.spans
}

// Clear removes all spans.
func (l *SpanList[V]) Clear() {
	l.spans = l.spans[:0]
}
