// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package attrtext

import (
	"github.com/cockroachdb/redact"
	"github.com/textkit/attrtext/internal/intervalmap"
)

// Span is an attribute value applied over the half-open rune range
// [Start, End) of an AttrString.
type Span[V any] struct {
	Start, End int
	Value      V
}

// FontSpan is a Span carrying a font.
type FontSpan = Span[FontID]

// ColorSpan is a Span carrying a color.
type ColorSpan = Span[Color]

// TrackingSpan is a Span carrying a non-default tracking value.
type TrackingSpan = Span[Tracking]

// Len returns the number of runes covered by the span.
func (s Span[V]) Len() int {
	return s.End - s.Start
}

// String implements fmt.Stringer.
func (s Span[V]) String() string {
	return redact.StringWithoutMarkers(s)
}

// SafeFormat implements redact.SafeFormatter.
func (s Span[V]) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("[%d,%d): %v", redact.Safe(s.Start), redact.Safe(s.End), s.Value)
}

func spansOf[V any](m *intervalmap.Map[V]) []Span[V] {
	var spans []Span[V]
	for i := range m.All() {
		spans = append(spans, Span[V]{Start: i.Start, End: i.Limit, Value: i.Value})
	}
	return spans
}
