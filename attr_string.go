// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package attrtext

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/textkit/attrtext/internal/intervalmap"
)

// AttrString is a Unicode string overlaid with independent attribute layers:
// font, color and tracking. Each layer maps half-open rune ranges to values;
// ranges of a layer never overlap, but ranges of different layers are
// unrelated to one another.
//
// Attributes are set either explicitly over a range (SetFont, SetColor,
// SetTracking) or in a streaming fashion: SetCurrentFont opens a span at the
// current end of the text that grows with every Append until the next
// SetCurrentFont or a ranged set on the same layer closes it. Commit and
// Iterate write the open span's current extent without closing it.
//
// Indices are rune indices. Text can only be appended, so indices are stable.
//
// An AttrString is not safe for concurrent use, and must not be mutated while
// an Iter obtained from it is in use.
type AttrString struct {
	opts     *Options
	text     []rune
	fonts    layer[FontID]
	colors   layer[Color]
	tracking layer[Tracking]
	// gen is bumped by every mutation; iterators compare it against the value
	// captured at creation.
	gen uint64
}

// openSpan is the current value of a streaming layer. While active, it covers
// [start, len(text)) and takes precedence over the committed intervals.
type openSpan[V any] struct {
	start int
	// limit is the end of the extent already written to the layer's map by
	// materialize, or start if nothing was written.
	limit  int
	value  V
	active bool
}

type layer[V any] struct {
	m    intervalmap.Map[V]
	open openSpan[V]
}

// close commits the open span, if any, as [open.start, n).
func (l *layer[V]) close(n int) {
	if !l.open.active {
		return
	}
	if l.open.start < n {
		l.m.Set(l.open.start, n, l.open.value)
	}
	l.open = openSpan[V]{}
}

// materialize writes the open span's current extent [open.start, n) to the
// map, leaving the span open. It reports whether the map changed.
func (l *layer[V]) materialize(n int) bool {
	if !l.open.active || l.open.limit >= n {
		return false
	}
	l.m.Set(l.open.start, n, l.open.value)
	l.open.limit = n
	return true
}

func (l *layer[V]) setCurrent(n int, v V) {
	l.close(n)
	l.open = openSpan[V]{start: n, limit: n, value: v, active: true}
}

func (l *layer[V]) set(n, start, end int, v V) {
	l.close(n)
	l.m.Set(start, end, v)
}

func (l *layer[V]) clear(n, start, end int) {
	l.close(n)
	l.m.ClearInterval(start, end)
}

func (l *layer[V]) at(i, n int, def V) V {
	if l.open.active && l.open.start <= i && i < n {
		return l.open.value
	}
	if v, ok := l.m.Lookup(i); ok {
		return v
	}
	return def
}

// replace resets the layer to exactly the given spans, replayed in order so
// that later spans win where they overlap earlier ones. It returns the spans
// that overlapped previously replayed spans.
func (l *layer[V]) replace(spans []Span[V], skip func(V) bool) (overlapping []Span[V]) {
	l.open = openSpan[V]{}
	l.m.Clear()
	for _, s := range spans {
		if covered(&l.m, s.Start, s.End) {
			overlapping = append(overlapping, s)
		}
		if skip != nil && skip(s.Value) {
			l.m.ClearInterval(s.Start, s.End)
			continue
		}
		l.m.Set(s.Start, s.End, s.Value)
	}
	return overlapping
}

// covered returns true if any interval of m intersects [start, end).
func covered[V any](m *intervalmap.Map[V], start, end int) bool {
	if _, ok := m.Lookup(start); ok {
		return true
	}
	next, ok := m.FindNext(start)
	return ok && next.Start < end
}

// New returns an AttrString holding text and no attributes. A nil opts uses
// the default options.
func New(text string, opts *Options) *AttrString {
	a := &AttrString{opts: opts.Clone().EnsureDefaults()}
	a.Append(text)
	return a
}

// Options returns the options the string was created with.
func (a *AttrString) Options() *Options {
	return a.opts
}

// Len returns the length of the text in runes.
func (a *AttrString) Len() int {
	return len(a.text)
}

// Empty returns true if the text is empty.
func (a *AttrString) Empty() bool {
	return len(a.text) == 0
}

// String returns the text.
func (a *AttrString) String() string {
	return string(a.text)
}

// Runes returns the text. The returned slice must not be modified.
func (a *AttrString) Runes() []rune {
	return a.text
}

// Slice returns the text in [start, end).
func (a *AttrString) Slice(start, end int) string {
	return string(a.text[start:end])
}

// Append appends text, normalized according to Options.Normalization. Open
// streaming spans extend over the new text.
func (a *AttrString) Append(text string) {
	a.text = append(a.text, []rune(a.opts.Normalization.apply(text))...)
	a.gen++
}

// AppendRunes appends runes, normalized according to Options.Normalization.
func (a *AttrString) AppendRunes(runes []rune) {
	if a.opts.Normalization != NormalizeNone {
		a.Append(string(runes))
		return
	}
	a.text = append(a.text, runes...)
	a.gen++
}

// SetCurrentFont closes the open font span, if any, and opens a new one with
// the given font at the current end of the text.
func (a *AttrString) SetCurrentFont(font FontID) {
	a.fonts.setCurrent(len(a.text), font)
	a.gen++
}

// SetCurrentColor closes the open color span, if any, and opens a new one with
// the given color at the current end of the text.
func (a *AttrString) SetCurrentColor(c Color) {
	a.colors.setCurrent(len(a.text), c)
	a.gen++
}

// SetCurrentTracking closes the open tracking span, if any, and opens a new
// one at the current end of the text. Setting DefaultTracking only closes the
// open span, since default tracking is the absence of a span.
func (a *AttrString) SetCurrentTracking(t Tracking) {
	if t.IsDefault() {
		a.tracking.close(len(a.text))
	} else {
		a.tracking.setCurrent(len(a.text), t)
	}
	a.gen++
}

// SetFont assigns font to [start, end), overwriting earlier font spans over
// that range. The open font span, if any, is closed first. It panics if
// start >= end.
func (a *AttrString) SetFont(start, end int, font FontID) {
	a.fonts.set(len(a.text), start, end, font)
	a.gen++
}

// ClearFont removes font attributes from [start, end). It panics if
// start >= end.
func (a *AttrString) ClearFont(start, end int) {
	a.fonts.clear(len(a.text), start, end)
	a.gen++
}

// SetColor assigns c to [start, end). It panics if start >= end.
func (a *AttrString) SetColor(start, end int, c Color) {
	a.colors.set(len(a.text), start, end, c)
	a.gen++
}

// ClearColor removes color attributes from [start, end). It panics if
// start >= end.
func (a *AttrString) ClearColor(start, end int) {
	a.colors.clear(len(a.text), start, end)
	a.gen++
}

// SetTracking assigns t to [start, end). Assigning DefaultTracking removes
// tracking from the range. It panics if start >= end.
func (a *AttrString) SetTracking(start, end int, t Tracking) {
	if t.IsDefault() {
		a.tracking.clear(len(a.text), start, end)
	} else {
		a.tracking.set(len(a.text), start, end, t)
	}
	a.gen++
}

// FontSpans returns the committed font spans in ascending order. A font set
// with SetCurrentFont is only included once its span has been closed or
// committed (see Commit).
func (a *AttrString) FontSpans() []FontSpan {
	return spansOf(&a.fonts.m)
}

// ColorSpans returns the committed color spans in ascending order.
func (a *AttrString) ColorSpans() []ColorSpan {
	return spansOf(&a.colors.m)
}

// TrackingSpans returns the committed tracking spans in ascending order.
func (a *AttrString) TrackingSpans() []TrackingSpan {
	return spansOf(&a.tracking.m)
}

// SetFontSpans replaces all font attributes, including an open font span,
// with spans. Spans are applied in order with SetFont semantics, so a span
// overlapping an earlier one overwrites it. Overlaps are logged.
func (a *AttrString) SetFontSpans(spans []FontSpan) {
	for _, s := range a.fonts.replace(spans, nil) {
		a.opts.Logger.Infof("attrtext: font span %s overlaps an earlier span and overwrites it", s)
	}
	a.gen++
}

// SetColorSpans replaces all color attributes with spans, with the same
// semantics as SetFontSpans.
func (a *AttrString) SetColorSpans(spans []ColorSpan) {
	for _, s := range a.colors.replace(spans, nil) {
		a.opts.Logger.Infof("attrtext: color span %s overlaps an earlier span and overwrites it", s)
	}
	a.gen++
}

// SetTrackingSpans replaces all tracking attributes with spans, with the same
// semantics as SetFontSpans. Spans carrying DefaultTracking clear their range.
func (a *AttrString) SetTrackingSpans(spans []TrackingSpan) {
	for _, s := range a.tracking.replace(spans, Tracking.IsDefault) {
		a.opts.Logger.Infof("attrtext: tracking span %s overlaps an earlier span and overwrites it", s)
	}
	a.gen++
}

// FontAt returns the effective font at rune index i.
func (a *AttrString) FontAt(i int) FontID {
	a.checkIndex(i)
	return a.fonts.at(i, len(a.text), a.opts.DefaultFont)
}

// ColorAt returns the effective color at rune index i.
func (a *AttrString) ColorAt(i int) Color {
	a.checkIndex(i)
	return a.colors.at(i, len(a.text), a.opts.DefaultColor)
}

// TrackingAt returns the effective tracking at rune index i.
func (a *AttrString) TrackingAt(i int) Tracking {
	a.checkIndex(i)
	return a.tracking.at(i, len(a.text), DefaultTracking)
}

func (a *AttrString) checkIndex(i int) {
	if i < 0 || i >= len(a.text) {
		panic(errors.AssertionFailedf("attrtext: index %d out of range [0,%d)", i, len(a.text)))
	}
}

// Commit writes the current extent of every open streaming span into its
// layer. The spans stay open, so subsequent appends keep extending them and a
// later Commit widens the same interval. Commit is idempotent.
func (a *AttrString) Commit() {
	n := len(a.text)
	committed := a.fonts.materialize(n)
	committed = a.colors.materialize(n) || committed
	committed = a.tracking.materialize(n) || committed
	if committed {
		a.gen++
	}
}

// Iterate commits open streaming spans and returns an iterator over the
// string's runs. The AttrString must not be mutated while the iterator is in
// use.
func (a *AttrString) Iterate() *Iter {
	a.Commit()
	it := &Iter{}
	it.init(a)
	return it
}

// All returns an iterator over the string's runs. See Iterate.
func (a *AttrString) All() iter.Seq[Run] {
	return func(yield func(Run) bool) {
		it := a.Iterate()
		for it.Next() {
			if !yield(it.Run()) {
				return
			}
		}
	}
}
