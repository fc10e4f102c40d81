// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package shaping measures the runs of an attributed string. Shaping proper
// (glyph selection, kerning, bidi) is delegated to a Shaper; this package
// provides the interface, a grapheme-based monospace Shaper and the glue that
// feeds every run of an AttrString through a Shaper.
package shaping

import (
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/rivo/uniseg"
	"github.com/textkit/attrtext"
	"github.com/textkit/attrtext/fontreg"
)

// Shaped is the result of shaping a piece of text in a single font.
type Shaped struct {
	// Clusters holds, for each glyph cluster, the rune offset at which it
	// starts within the shaped text.
	Clusters []int
	// Advances holds the horizontal advance of each cluster in pixels,
	// including tracking.
	Advances []float32
	// Width is the sum of Advances.
	Width float32
}

// A Shaper converts text in a font into positioned glyph clusters.
type Shaper interface {
	Shape(text string, font attrtext.FontID, tracking attrtext.Tracking) (Shaped, error)
}

// FontSource resolves the fonts referenced by an attributed string.
// *fontreg.Registry implements FontSource.
type FontSource interface {
	Font(id attrtext.FontID) (fontreg.Font, bool)
}

var _ FontSource = (*fontreg.Registry)(nil)

// cellAdvance is the advance of a single-cell cluster in ems.
const cellAdvance = 0.6

// Monospace is a Shaper that places grapheme clusters on a fixed grid. A
// cluster occupies as many cells as its monospace display width (East Asian
// wide characters and most emoji take two cells, combining sequences take
// one), and a cell is cellAdvance ems wide.
type Monospace struct {
	Fonts FontSource
	// DefaultSize is the size used for text in attrtext.DefaultFont.
	DefaultSize float32
}

var _ Shaper = Monospace{}

// Shape implements Shaper. Tracking is added between clusters, not after the
// last one.
func (m Monospace) Shape(
	text string, font attrtext.FontID, tracking attrtext.Tracking,
) (Shaped, error) {
	size, err := m.size(font)
	if err != nil {
		return Shaped{}, err
	}
	var s Shaped
	state := -1
	offset := 0
	for len(text) > 0 {
		var cluster string
		var width int
		cluster, text, width, state = uniseg.FirstGraphemeClusterInString(text, state)
		advance := float32(width) * size * cellAdvance
		if len(s.Advances) > 0 {
			s.Advances[len(s.Advances)-1] += tracking.Value()
			s.Width += tracking.Value()
		}
		s.Clusters = append(s.Clusters, offset)
		s.Advances = append(s.Advances, advance)
		s.Width += advance
		offset += utf8.RuneCountInString(cluster)
	}
	return s, nil
}

func (m Monospace) size(font attrtext.FontID) (float32, error) {
	if font == attrtext.DefaultFont {
		if m.DefaultSize <= 0 {
			return 0, errors.New("shaping: no default font size")
		}
		return m.DefaultSize, nil
	}
	if m.Fonts == nil {
		return 0, errors.Errorf("shaping: no font source to resolve font %s", font)
	}
	f, ok := m.Fonts.Font(font)
	if !ok {
		return 0, errors.Errorf("shaping: unknown font %s", font)
	}
	return f.Size, nil
}

// ShapedRun is a run of an AttrString together with its shaping.
type ShapedRun struct {
	attrtext.Run
	Shaped
	// X is the horizontal position at which the run starts.
	X float32
}

// ShapeString shapes every run of as with shaper. Runs are laid out left to
// right on a single line.
func ShapeString(as *attrtext.AttrString, shaper Shaper) ([]ShapedRun, error) {
	var res []ShapedRun
	var x float32
	for r := range as.All() {
		shaped, err := shaper.Shape(r.Text(), r.Font, r.Tracking)
		if err != nil {
			return nil, errors.Wrapf(err, "shaping run [%d,%d)", r.Start, r.End)
		}
		res = append(res, ShapedRun{Run: r, Shaped: shaped, X: x})
		x += shaped.Width
	}
	return res, nil
}

// Width returns the total width of as when shaped with shaper.
func Width(as *attrtext.AttrString, shaper Shaper) (float32, error) {
	runs, err := ShapeString(as, shaper)
	if err != nil {
		return 0, err
	}
	var w float32
	for _, r := range runs {
		w += r.Width
	}
	return w, nil
}
