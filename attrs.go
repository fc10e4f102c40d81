// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package attrtext

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/lucasb-eyer/go-colorful"
)

// FontID is an opaque handle to a font owned by an external font registry
// (see the fontreg package). An AttrString never dereferences a FontID; it
// only stores, compares and returns it. The zero FontID denotes the default
// font.
type FontID uint32

// DefaultFont is the FontID reported for text without a font attribute, unless
// Options.DefaultFont says otherwise.
const DefaultFont FontID = 0

// String implements fmt.Stringer.
func (id FontID) String() string {
	if id == DefaultFont {
		return "default"
	}
	return "F" + strconv.FormatUint(uint64(id), 10)
}

// SafeValue implements redact.SafeValue.
func (id FontID) SafeValue() {}

// Color is an RGB color with an alpha channel. All components are in [0, 1].
type Color struct {
	colorful.Color
	A float64
}

// White is opaque white, the default text color.
var White = Color{Color: colorful.Color{R: 1, G: 1, B: 1}, A: 1}

// RGBA returns the color with the given components.
func RGBA(r, g, b, a float64) Color {
	return Color{Color: colorful.Color{R: r, G: g, B: b}, A: a}
}

// ParseColor parses a color in "#rrggbb" or "#rrggbbaa" form.
func ParseColor(s string) (Color, error) {
	var alpha = 1.0
	switch len(s) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, errors.Wrapf(err, "invalid alpha in color %q", s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	default:
		return Color{}, errors.Errorf("invalid color %q: expected #rrggbb or #rrggbbaa", s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Color{}, errors.Wrapf(err, "invalid color %q", s)
	}
	return Color{Color: c, A: alpha}, nil
}

// Hex returns the color as "#rrggbb", with an alpha byte appended when the
// color is not fully opaque.
func (c Color) Hex() string {
	h := c.Color.Hex()
	if a := uint8(c.A*255 + 0.5); a != 0xff {
		h += strconv.FormatUint(uint64(a)|0x100, 16)[1:]
	}
	return h
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// SafeValue implements redact.SafeValue.
func (c Color) SafeValue() {}

// Tracking is the extra spacing applied between characters. The zero value is
// the default tracking, which is distinct from an explicit tracking of 0: the
// default is the absence of a tracking attribute.
type Tracking struct {
	value float32
	set   bool
}

// DefaultTracking is the absence of a tracking attribute.
var DefaultTracking = Tracking{}

// MakeTracking returns an explicit tracking value.
func MakeTracking(value float32) Tracking {
	return Tracking{value: value, set: true}
}

// ParseTracking parses "default" or a decimal tracking value.
func ParseTracking(s string) (Tracking, error) {
	if s == "default" {
		return DefaultTracking, nil
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return Tracking{}, errors.Wrapf(err, "invalid tracking %q", s)
	}
	return MakeTracking(float32(v)), nil
}

// IsDefault returns true if t is the default tracking.
func (t Tracking) IsDefault() bool {
	return !t.set
}

// Value returns the tracking amount; the default tracking has a value of 0.
func (t Tracking) Value() float32 {
	return t.value
}

// String implements fmt.Stringer.
func (t Tracking) String() string {
	if !t.set {
		return "default"
	}
	return strconv.FormatFloat(float64(t.value), 'g', -1, 32)
}

// SafeValue implements redact.SafeValue.
func (t Tracking) SafeValue() {}

var _ redact.SafeValue = FontID(0)
var _ redact.SafeValue = Color{}
var _ redact.SafeValue = Tracking{}
