// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package attrtext

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/textkit/attrtext/internal/intervalmap"
)

// Run is a maximal range of an AttrString over which every attribute layer
// has a constant effective value.
type Run struct {
	Start, End int
	Font       FontID
	Color      Color
	Tracking   Tracking
	text       []rune
}

// Len returns the number of runes in the run.
func (r Run) Len() int {
	return r.End - r.Start
}

// Text returns the run's text.
func (r Run) Text() string {
	return string(r.text)
}

// Runes returns the run's text as runes. The returned slice aliases the
// AttrString's buffer and must not be modified.
func (r Run) Runes() []rune {
	return r.text
}

// String implements fmt.Stringer.
func (r Run) String() string {
	return redact.StringWithoutMarkers(r)
}

// SafeFormat implements redact.SafeFormatter. The run's text is considered
// unsafe; its range and attributes are not.
func (r Run) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("[%d,%d) %q font=%v color=%v tracking=%v",
		redact.Safe(r.Start), redact.Safe(r.End), string(r.text), r.Font, r.Color, r.Tracking)
}

type iterPos int8

const (
	iterNotStarted iterPos = iota
	iterPositioned
	iterExhausted
)

// cursor tracks a layer's position during iteration: the interval at or after
// the current run start, or nothing once the layer is exhausted.
type cursor[V any] struct {
	m     *intervalmap.Map[V]
	cur   intervalmap.Interval[V]
	valid bool
}

func (c *cursor[V]) first(m *intervalmap.Map[V]) {
	c.m = m
	c.cur, c.valid = m.First()
}

// advance steps past the interval ending at or before pos.
func (c *cursor[V]) advance(pos int) {
	for c.valid && pos >= c.cur.Limit {
		c.cur, c.valid = c.m.FindNext(c.cur.Start)
	}
}

// resolve returns the layer's value at pos, which must not precede the
// previous run's end, and the position at which that value next changes.
func (c *cursor[V]) resolve(pos, n int, def V) (V, int) {
	switch {
	case !c.valid:
		return def, n
	case pos < c.cur.Start:
		return def, c.cur.Start
	default:
		return c.cur.Value, c.cur.Limit
	}
}

// Iter yields the runs of an AttrString in ascending order. An Iter is
// obtained from AttrString.Iterate and used as:
//
//	it := s.Iterate()
//	for it.Next() {
//		r := it.Run()
//		...
//	}
//
// Each step advances every layer whose current interval ends at the previous
// run's end, so layers sharing a boundary move together. Adjacent segments
// with identical attributes are merged, so runs are maximal. The runs exactly
// partition [0, Len()) of the string.
type Iter struct {
	s   *AttrString
	gen uint64
	// n is the text length when the iterator was created.
	n        int
	pos      iterPos
	run      Run
	fonts    cursor[FontID]
	colors   cursor[Color]
	tracking cursor[Tracking]
}

func (it *Iter) init(s *AttrString) {
	*it = Iter{s: s, gen: s.gen, n: len(s.text)}
	it.reset()
}

func (it *Iter) reset() {
	it.pos = iterNotStarted
	it.run = Run{}
	it.fonts.first(&it.s.fonts.m)
	it.colors.first(&it.s.colors.m)
	it.tracking.first(&it.s.tracking.m)
}

// First positions the iterator at the first run, restarting iteration if
// needed. It returns false if the string is empty.
func (it *Iter) First() bool {
	it.checkGeneration()
	it.reset()
	return it.Next()
}

// Next advances to the next run and returns false once the string is
// exhausted. The first call positions the iterator at the first run.
func (it *Iter) Next() bool {
	it.checkGeneration()
	if it.pos == iterExhausted {
		return false
	}
	start := it.run.End
	if start >= it.n {
		it.pos = iterExhausted
		it.run = Run{}
		return false
	}

	font, color, tracking, end := it.segment(start)
	for end < it.n {
		f, c, t, e := it.segment(end)
		if f != font || c != color || t != tracking {
			break
		}
		end = e
	}

	it.run = Run{
		Start:    start,
		End:      end,
		Font:     font,
		Color:    color,
		Tracking: tracking,
		text:     it.s.text[start:end:end],
	}
	it.pos = iterPositioned
	return true
}

// segment returns the effective attributes at pos and the position at which
// the first of them changes.
func (it *Iter) segment(pos int) (FontID, Color, Tracking, int) {
	it.fonts.advance(pos)
	it.colors.advance(pos)
	it.tracking.advance(pos)

	opts := it.s.opts
	font, end := it.fonts.resolve(pos, it.n, opts.DefaultFont)
	color, b := it.colors.resolve(pos, it.n, opts.DefaultColor)
	end = min(end, b)
	tracking, b := it.tracking.resolve(pos, it.n, DefaultTracking)
	return font, color, tracking, min(end, b, it.n)
}

// Valid returns true if the iterator is positioned at a run.
func (it *Iter) Valid() bool {
	return it.pos == iterPositioned
}

// Run returns the current run. It is only meaningful when Valid returns true.
func (it *Iter) Run() Run {
	return it.run
}

func (it *Iter) checkGeneration() {
	if it.gen != it.s.gen {
		panic(errors.AssertionFailedf("attrtext: AttrString mutated during iteration"))
	}
}
