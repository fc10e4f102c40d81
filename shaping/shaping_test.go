// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package shaping

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/textkit/attrtext"
	"github.com/textkit/attrtext/fontreg"
	"github.com/textkit/attrtext/internal/testutils"
)

const delta = 1e-4

func newRegistry(t *testing.T) (*fontreg.Registry, attrtext.FontID, attrtext.FontID) {
	reg := fontreg.New(testutils.Logger{T: t})
	face := testutils.CheckErr(reg.RegisterFace("mono", fontreg.FaceMetrics{Ascender: 0.8, Descender: -0.2, Height: 1}))
	small := testutils.CheckErr(reg.LoadFont(face, 10))
	big := testutils.CheckErr(reg.LoadFont(face, 20))
	return reg, small, big
}

func requireAdvances(t *testing.T, expected []float32, s Shaped) {
	t.Helper()
	require.Len(t, s.Advances, len(expected))
	var sum float32
	for i := range expected {
		require.InDelta(t, expected[i], s.Advances[i], delta, "advance %d", i)
		sum += expected[i]
	}
	require.InDelta(t, sum, s.Width, delta)
}

func TestMonospaceShape(t *testing.T) {
	reg, small, _ := newRegistry(t)
	m := Monospace{Fonts: reg, DefaultSize: 20}

	s, err := m.Shape("abc", small, attrtext.DefaultTracking)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, s.Clusters)
	requireAdvances(t, []float32{6, 6, 6}, s)

	// Tracking is applied between clusters only.
	s, err = m.Shape("abc", small, attrtext.MakeTracking(1))
	require.NoError(t, err)
	requireAdvances(t, []float32{7, 7, 6}, s)

	// A combining sequence is a single cluster; wide characters take two
	// cells.
	s, err = m.Shape("e\u0301x\u65e5\U0001F1EF\U0001F1F5", small, attrtext.DefaultTracking)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 3, 4}, s.Clusters)
	requireAdvances(t, []float32{6, 6, 12, 12}, s)

	s, err = m.Shape("ab", attrtext.DefaultFont, attrtext.DefaultTracking)
	require.NoError(t, err)
	requireAdvances(t, []float32{12, 12}, s)

	s, err = m.Shape("", small, attrtext.MakeTracking(3))
	require.NoError(t, err)
	require.Empty(t, s.Clusters)
	require.Zero(t, s.Width)

	_, err = m.Shape("x", small+100, attrtext.DefaultTracking)
	require.ErrorContains(t, err, "unknown font")

	_, err = Monospace{Fonts: reg}.Shape("x", attrtext.DefaultFont, attrtext.DefaultTracking)
	require.ErrorContains(t, err, "no default font size")
}

func TestShapeString(t *testing.T) {
	reg, small, big := newRegistry(t)
	m := Monospace{Fonts: reg, DefaultSize: 10}

	as := attrtext.New("", nil)
	as.SetCurrentFont(small)
	as.Append("Hello")
	as.SetCurrentFont(big)
	as.Append(" BIG ")
	as.SetCurrentFont(small)
	as.Append("boi")

	runs, err := ShapeString(as, m)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	require.Equal(t, "Hello", runs[0].Text())
	require.Equal(t, big, runs[1].Font)
	require.InDelta(t, 30, runs[0].Width, delta)
	require.InDelta(t, 60, runs[1].Width, delta)
	require.InDelta(t, 30, runs[1].X, delta)
	require.InDelta(t, 90, runs[2].X, delta)

	w, err := Width(as, m)
	require.NoError(t, err)
	require.InDelta(t, 108, w, delta)

	empty, err := ShapeString(attrtext.New("", nil), m)
	require.NoError(t, err)
	require.Empty(t, empty)
}

type failingShaper struct{}

func (failingShaper) Shape(string, attrtext.FontID, attrtext.Tracking) (Shaped, error) {
	return Shaped{}, errShaperFailed
}

var errShaperFailed = errors.New("shaper failed")

func TestShapeStringError(t *testing.T) {
	as := attrtext.New("abc", nil)
	as.SetFont(1, 2, 5)
	_, err := ShapeString(as, failingShaper{})
	require.ErrorIs(t, err, errShaperFailed)
	require.ErrorContains(t, err, "shaping run [0,1)")
}
