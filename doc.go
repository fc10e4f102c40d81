// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package attrtext implements attributed text: a Unicode string overlaid with
// independently evolving attribute layers (font, color and tracking), and an
// iterator that slices the string into maximal runs of homogeneous
// attributes.
//
// Each layer is an ordered map of non-overlapping half-open rune ranges to
// values. Setting a range overwrites whatever the layer held there, splitting
// ranges that straddle its boundaries:
//
//	s := attrtext.New("0123456789", nil)
//	s.SetFontSpans([]attrtext.FontSpan{{Start: 2, End: 4, Value: f17}, {Start: 4, End: 5, Value: f36}})
//	s.SetFont(0, 1, f17)
//	// s.FontSpans() == [0,1): F17, [2,4): F17, [4,5): F36
//
// Strings can also be built in a streaming fashion, where the current value of
// a layer applies to all text appended until the value changes:
//
//	s := attrtext.New("", nil)
//	s.SetCurrentFont(f17)
//	s.Append("Hello ")
//	s.SetCurrentFont(f36)
//	s.Append("World")
//	for r := range s.All() {
//		fmt.Println(r.Text(), r.Font) // "Hello " F17, then "World" F36
//	}
//
// Runs are the unit of work for a text shaper: every run carries the text
// slice together with a single font and tracking value (see the shaping
// package). Fonts are opaque FontID handles issued by an external registry
// (see the fontreg package); this package never dereferences them.
//
// Contract violations, such as an empty or inverted range or mutating a string
// while iterating over it, panic with an assertion failure. Absence (no
// attribute at an index, an empty string) is never an error.
package attrtext
