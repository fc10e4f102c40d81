// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package fontreg

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/crlib/crstrings"
	"github.com/cockroachdb/datadriven"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"github.com/textkit/attrtext"
	"github.com/textkit/attrtext/internal/strparse"
	"github.com/textkit/attrtext/internal/testutils"
	"golang.org/x/sync/errgroup"
)

func TestRegistryDataDriven(t *testing.T) {
	var r *Registry
	logger := &testutils.BufferLogger{}
	datadriven.RunTest(t, "testdata/registry", func(t *testing.T, td *datadriven.TestData) string {
		var buf strings.Builder
		switch td.Cmd {
		case "reset":
			r = New(logger)
			return ""

		case "register-face":
			for l := range crstrings.LinesSeq(td.Input) {
				p := strparse.MakeParser("", l)
				name := p.Next()
				m := FaceMetrics{Ascender: p.Float32(), Descender: p.Float32(), Height: p.Float32()}
				if _, err := r.RegisterFace(name, m); err != nil {
					fmt.Fprintf(&buf, "error: %v\n", err)
				}
			}

		case "load-font":
			for l := range crstrings.LinesSeq(td.Input) {
				p := strparse.MakeParser("", l)
				name := p.Next()
				size := p.Float32()
				faceID, ok := r.Face(name)
				if !ok {
					// Exercise the unknown face path.
					faceID = 1 << 20
				}
				id, err := r.LoadFont(faceID, size)
				if err != nil {
					fmt.Fprintf(&buf, "error: %v\n", err)
					continue
				}
				fmt.Fprintf(&buf, "%s\n", id)
			}

		case "font-by-name":
			for l := range crstrings.LinesSeq(td.Input) {
				id, err := r.FontByName(strings.TrimSpace(l))
				if err != nil {
					fmt.Fprintf(&buf, "error: %v\n", err)
					continue
				}
				fmt.Fprintf(&buf, "%s\n", id)
			}

		case "fonts":
			for _, f := range r.Fonts() {
				fmt.Fprintf(&buf, "%s\n", f)
			}

		default:
			td.Fatalf(t, "unknown command %q", td.Cmd)
		}
		buf.WriteString(logger.String())
		return buf.String()
	})
}

func TestRegistryFont(t *testing.T) {
	r := New(testutils.Logger{T: t})
	face := testutils.CheckErr(r.RegisterFace("serif", FaceMetrics{Ascender: 0.75, Descender: -0.25, Height: 1}))

	_, ok := r.Font(attrtext.DefaultFont)
	require.False(t, ok)
	_, ok = r.FindFont(face, 12)
	require.False(t, ok)

	id := testutils.CheckErr(r.LoadFont(face, 12))
	require.NotEqual(t, attrtext.DefaultFont, id)
	f, ok := r.Font(id)
	require.True(t, ok)
	require.Equal(t, Font{
		ID: id, Face: face, FaceName: "serif", Size: 12,
		Ascender: 9, Descender: -3, Height: 12,
	}, f)
	require.Equal(t, "serif@12", f.Name())
	require.Equal(t, f, r.MustFont(id))
	require.Panics(t, func() { r.MustFont(id + 1) })

	// Sizes within 1/64 of a pixel share a font.
	require.Equal(t, id, testutils.CheckErr(r.LoadFont(face, 12.01)))
	require.NotEqual(t, id, testutils.CheckErr(r.LoadFont(face, 12.5)))

	_, err := r.LoadFont(face, 0)
	require.Error(t, err)
	_, err = r.RegisterFace("bad face", FaceMetrics{Height: 1})
	require.Error(t, err)
	_, err = r.RegisterFace("flat", FaceMetrics{})
	require.Error(t, err)
}

func TestRegistryConcurrentLoad(t *testing.T) {
	r := New(nil)
	face := testutils.CheckErr(r.RegisterFace("mono", FaceMetrics{Ascender: 0.8, Descender: -0.2, Height: 1.2}))

	const goroutines = 8
	ids := make([][]attrtext.FontID, goroutines)
	var g errgroup.Group
	for i := range goroutines {
		g.Go(func() error {
			for size := 1; size <= 32; size++ {
				id, err := r.LoadFont(face, float32(size))
				if err != nil {
					return err
				}
				ids[i] = append(ids[i], id)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.Len(t, r.Fonts(), 32)
	for i := 1; i < goroutines; i++ {
		require.Equal(t, ids[0], ids[i])
	}
	require.Equal(t, float64(32), counterValue(t, r.Metrics().FontLoads))
	require.Equal(t, float64(goroutines*32), counterValue(t, r.Metrics().FontLookups))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, c.Write(metric))
	return metric.GetCounter().GetValue()
}

func TestRegistryMetrics(t *testing.T) {
	r := New(nil)
	m := r.Metrics()
	face := testutils.CheckErr(r.RegisterFace("sans", FaceMetrics{Ascender: 0.75, Descender: -0.25, Height: 1.25}))
	_, err := r.RegisterFace("sans", FaceMetrics{Ascender: 0.75, Descender: -0.25, Height: 1.25})
	require.Error(t, err)
	require.Equal(t, float64(1), counterValue(t, m.FacesRegistered))

	testutils.CheckErr(r.LoadFont(face, 12))
	testutils.CheckErr(r.LoadFont(face, 12))
	testutils.CheckErr(r.FontByName("sans@14"))
	_, err = r.LoadFont(face, -1)
	require.Error(t, err)
	require.Equal(t, float64(3), counterValue(t, m.FontLookups))
	require.Equal(t, float64(2), counterValue(t, m.FontLoads))

	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))
	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.ElementsMatch(t, []string{
		"fontreg_faces_registered_total",
		"fontreg_font_lookups_total",
		"fontreg_font_loads_total",
	}, names)
	// Registering twice fails.
	require.Error(t, m.Register(reg))
}
