// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intervalmap

import (
	"cmp"
	"fmt"
	"iter"
	"strings"

	"github.com/RaduBerinde/btreemap"
	"github.com/cockroachdb/errors"
	"github.com/textkit/attrtext/internal/invariants"
)

// degree of the B-Tree backing a Map.
const degree = 8

// Interval is a half-open range [Start, Limit) of indices carrying a value.
type Interval[V any] struct {
	Start, Limit int
	Value        V
}

// Len returns the number of indices covered by the interval.
func (i Interval[V]) Len() int {
	return i.Limit - i.Start
}

// Contains returns true if key lies within [Start, Limit).
func (i Interval[V]) Contains(key int) bool {
	return i.Start <= key && key < i.Limit
}

// String returns the interval formatted as "[start,limit): value".
func (i Interval[V]) String() string {
	return fmt.Sprintf("[%d,%d): %v", i.Start, i.Limit, i.Value)
}

type entry[V any] struct {
	limit int
	value V
}

// Map is an ordered map from non-overlapping half-open intervals to values.
// Setting an interval overwrites whatever the map previously held over that
// range: intervals that are fully covered are removed and intervals that
// straddle a boundary are split so that only the uncovered part survives.
//
// The zero value is an empty map ready to use. Map is not safe for concurrent
// use.
type Map[V any] struct {
	// tree is keyed by interval start.
	tree    *btreemap.BTreeMap[int, entry[V]]
	scratch []int
}

func (m *Map[V]) maybeInit() {
	if m.tree == nil {
		m.tree = btreemap.New[int, entry[V]](degree, cmp.Compare[int])
	}
}

// Set assigns value to [start, limit), overwriting any existing coverage of
// that range. Set panics if start >= limit.
func (m *Map[V]) Set(start, limit int, value V) {
	assertValidInterval(start, limit)
	m.maybeInit()
	m.remove(start, limit)
	m.tree.ReplaceOrInsert(start, entry[V]{limit: limit, value: value})
	if invariants.Enabled {
		m.mustValidate()
	}
}

// ClearInterval removes all coverage of [start, limit). Intervals straddling
// either boundary are cut; intervals inside the range are dropped. It panics
// if start >= limit.
func (m *Map[V]) ClearInterval(start, limit int) {
	assertValidInterval(start, limit)
	if m.tree == nil {
		return
	}
	m.remove(start, limit)
	if invariants.Enabled {
		m.mustValidate()
	}
}

// Clear removes all intervals from the map.
func (m *Map[V]) Clear() {
	if m.tree != nil {
		m.tree.Clear(false /* addNodesToFreelist */)
	}
}

// Lookup returns the value of the interval containing key.
func (m *Map[V]) Lookup(key int) (V, bool) {
	if _, e, ok := m.containing(key); ok {
		return e.value, true
	}
	var zero V
	return zero, false
}

// LookupInterval returns the interval containing key.
func (m *Map[V]) LookupInterval(key int) (Interval[V], bool) {
	if start, e, ok := m.containing(key); ok {
		return Interval[V]{Start: start, Limit: e.limit, Value: e.value}, true
	}
	return Interval[V]{}, false
}

// FindNext returns the first interval whose start is strictly greater than
// key. Note that an interval containing key but starting at or before it is
// never returned; use Lookup for that.
func (m *Map[V]) FindNext(key int) (Interval[V], bool) {
	if m.tree == nil {
		return Interval[V]{}, false
	}
	for start, e := range m.tree.Ascend(btreemap.GT(key), btreemap.Max[int]()) {
		return Interval[V]{Start: start, Limit: e.limit, Value: e.value}, true
	}
	return Interval[V]{}, false
}

// First returns the interval with the smallest start.
func (m *Map[V]) First() (Interval[V], bool) {
	if m.tree == nil {
		return Interval[V]{}, false
	}
	start, e, ok := m.tree.Min()
	if !ok {
		return Interval[V]{}, false
	}
	return Interval[V]{Start: start, Limit: e.limit, Value: e.value}, true
}

// All returns an iterator over the map's intervals in ascending start order.
// The map must not be mutated during iteration.
func (m *Map[V]) All() iter.Seq[Interval[V]] {
	return func(yield func(Interval[V]) bool) {
		if m.tree == nil {
			return
		}
		for start, e := range m.tree.Ascend(btreemap.Min[int](), btreemap.Max[int]()) {
			if !yield(Interval[V]{Start: start, Limit: e.limit, Value: e.value}) {
				return
			}
		}
	}
}

// Intervals returns a copy of the map's intervals in ascending start order.
func (m *Map[V]) Intervals() []Interval[V] {
	var res []Interval[V]
	for i := range m.All() {
		res = append(res, i)
	}
	return res
}

// Len returns the number of intervals in the map.
func (m *Map[V]) Len() int {
	if m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

// Empty returns true if the map holds no intervals.
func (m *Map[V]) Empty() bool {
	return m.Len() == 0
}

// String prints one interval per line, or "<empty>".
func (m *Map[V]) String() string {
	var buf strings.Builder
	for i := range m.All() {
		fmt.Fprintf(&buf, "%s\n", i)
	}
	if buf.Len() == 0 {
		return "<empty>"
	}
	return buf.String()
}

// remove clears [start, limit) by first splitting the intervals containing
// limit and start so that every interval starting inside the range is fully
// covered by it, then erasing those intervals.
func (m *Map[V]) remove(start, limit int) {
	m.split(limit)
	m.split(start)

	m.scratch = m.scratch[:0]
	for s := range m.tree.Ascend(btreemap.GE(start), btreemap.LT(limit)) {
		m.scratch = append(m.scratch, s)
	}
	for _, s := range m.scratch {
		m.tree.Delete(s)
	}
}

// split cuts the interval containing point into [start, point) and
// [point, limit). It is a no-op if no interval contains point or if point is
// already an interval boundary.
func (m *Map[V]) split(point int) {
	start, e, ok := m.containing(point)
	if !ok || start == point {
		return
	}
	m.tree.ReplaceOrInsert(start, entry[V]{limit: point, value: e.value})
	m.tree.ReplaceOrInsert(point, entry[V]{limit: e.limit, value: e.value})
}

// containing returns the interval containing point, if any.
func (m *Map[V]) containing(point int) (start int, e entry[V], ok bool) {
	if m.tree == nil {
		return 0, e, false
	}
	for s, pe := range m.tree.Descend(btreemap.LE(point), btreemap.Min[int]()) {
		if point < pe.limit {
			return s, pe, true
		}
		break
	}
	return 0, e, false
}

// validate checks that every interval is non-empty and that intervals are
// ascending and pairwise non-overlapping.
func (m *Map[V]) validate() error {
	prevLimit, first := 0, true
	for i := range m.All() {
		if i.Start >= i.Limit {
			return errors.AssertionFailedf("interval [%d,%d) is empty", i.Start, i.Limit)
		}
		if !first && i.Start < prevLimit {
			return errors.AssertionFailedf("interval [%d,%d) overlaps previous interval ending at %d",
				i.Start, i.Limit, prevLimit)
		}
		prevLimit, first = i.Limit, false
	}
	return nil
}

func (m *Map[V]) mustValidate() {
	if err := m.validate(); err != nil {
		panic(err)
	}
}

func assertValidInterval(start, limit int) {
	if start >= limit {
		panic(errors.AssertionFailedf("invalid interval [%d,%d): start must be < limit", start, limit))
	}
}
