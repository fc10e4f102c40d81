// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package attrtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultOptionsString(t *testing.T) {
	const expected = `[Options]
  default_color=#ffffff
  default_font=0
  normalization=none
`
	require.Equal(t, expected, (*Options)(nil).EnsureDefaults().String())
}

func TestOptionsCheck(t *testing.T) {
	opts := (&Options{
		DefaultFont:   12,
		DefaultColor:  RGBA(1, 0, 0, 0.5),
		Normalization: NormalizeNFC,
	}).EnsureDefaults()
	s := opts.String()

	var parsed Options
	require.NoError(t, parsed.Parse(s))
	parsed.EnsureDefaults()
	require.Equal(t, s, parsed.String())
	require.Equal(t, FontID(12), parsed.DefaultFont)
	require.Equal(t, NormalizeNFC, parsed.Normalization)
	require.NoError(t, parsed.Validate())
}

func TestOptionsParseErrors(t *testing.T) {
	testCases := []struct {
		in, err string
	}{
		{"[Options]\n  bogus=1\n", "unknown option: Options.bogus"},
		{"[Other]\n  default_font=1\n", "unknown section"},
		{"[Options]\n  default_font\n", "invalid key=value syntax"},
		{"[Options]\n  default_font=-1\n", "invalid value for Options.default_font"},
		{"[Options]\n  normalization=nfd\n", "unknown normalization"},
		{"[Options]\n  default_color=red\n", "invalid value for Options.default_color"},
	}
	for _, tc := range testCases {
		t.Run("", func(t *testing.T) {
			var opts Options
			err := opts.Parse(tc.in)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.err)
		})
	}
}

func TestOptionsParseComments(t *testing.T) {
	var opts Options
	require.NoError(t, opts.Parse(`
; a comment
# another one
[Options]
  default_font=3
`))
	require.Equal(t, FontID(3), opts.DefaultFont)
}

func TestOptionsValidate(t *testing.T) {
	opts := (&Options{}).EnsureDefaults()
	require.NoError(t, opts.Validate())

	opts.Normalization = 5
	opts.DefaultColor.A = 2
	opts.Logger = nil
	err := opts.Validate()
	require.Error(t, err)
	for _, s := range []string{
		"Normalization (5) must be none or nfc",
		"DefaultColor.A (2) must be in [0, 1]",
		"Logger must be set",
	} {
		require.True(t, strings.Contains(err.Error(), s), "missing %q in %q", s, err)
	}
}

func TestOptionsClone(t *testing.T) {
	var nilOpts *Options
	require.Equal(t, &Options{}, nilOpts.Clone())

	opts := &Options{DefaultFont: 2}
	c := opts.Clone()
	c.DefaultFont = 3
	require.Equal(t, FontID(2), opts.DefaultFont)

	// New works on a copy of the options it is given.
	a := New("", opts)
	opts.DefaultFont = 9
	require.Equal(t, FontID(2), a.Options().DefaultFont)
}

func TestParseColor(t *testing.T) {
	for _, s := range []string{"#000000", "#ff8000", "#12345678", "#ffffff00"} {
		c, err := ParseColor(s)
		require.NoError(t, err)
		require.Equal(t, s, c.Hex())
	}
	c, err := ParseColor("#FF0000")
	require.NoError(t, err)
	require.Equal(t, RGBA(1, 0, 0, 1), c)

	for _, s := range []string{"", "ff0000", "#ff00", "#gg0000", "#ff0000zz"} {
		_, err := ParseColor(s)
		require.Error(t, err, s)
	}
}

func TestTracking(t *testing.T) {
	require.True(t, DefaultTracking.IsDefault())
	require.Equal(t, "default", DefaultTracking.String())
	require.Zero(t, DefaultTracking.Value())

	tr, err := ParseTracking("0")
	require.NoError(t, err)
	require.False(t, tr.IsDefault())
	require.NotEqual(t, DefaultTracking, tr)
	require.Equal(t, "0", tr.String())

	tr, err = ParseTracking("-0.25")
	require.NoError(t, err)
	require.Equal(t, MakeTracking(-0.25), tr)

	tr, err = ParseTracking("default")
	require.NoError(t, err)
	require.Equal(t, DefaultTracking, tr)

	_, err = ParseTracking("wide")
	require.Error(t, err)
}

func TestFontIDString(t *testing.T) {
	require.Equal(t, "default", DefaultFont.String())
	require.Equal(t, "F17", FontID(17).String())
}
