// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/errors"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"
	"github.com/textkit/attrtext/shaping"
)

var runsCmd = &cobra.Command{
	Use:   "runs <script>",
	Short: "print the runs of the attributed string built by a script",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadScript(args[0])
		if err != nil {
			return err
		}
		return writeRuns(cmd.OutOrStdout(), e, shaping.Monospace{Fonts: e.reg, DefaultSize: defaultSize})
	},
}

var spansCmd = &cobra.Command{
	Use:   "spans <script>",
	Short: "print the attribute spans of the attributed string built by a script",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadScript(args[0])
		if err != nil {
			return err
		}
		e.s.Commit()
		writeSpans(cmd.OutOrStdout(), e)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <script>",
	Short: "summarize the run lengths and widths of the attributed string built by a script",
	Long: `
Print the distribution of run lengths in runes along with a plot of the shaped
width of each run, in text order.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadScript(args[0])
		if err != nil {
			return err
		}
		return writeStats(cmd.OutOrStdout(), e, shaping.Monospace{Fonts: e.reg, DefaultSize: defaultSize})
	},
}

func loadScript(path string) (*env, error) {
	opts, err := loadOptions(optionsPath, verbose)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	e := newEnv(opts)
	if err := e.runScript(f); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return e, nil
}

// writeRuns prints a table with a row per run. The cells column is the
// monospace display width of the run's text; the width column is the run's
// shaped width in pixels.
func writeRuns(w io.Writer, e *env, shaper shaping.Shaper) error {
	runs, err := shaping.ShapeString(e.s, shaper)
	if err != nil {
		return err
	}
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Start", "End", "Text", "Font", "Color", "Tracking", "Cells", "Width"})
	tbl.SetAutoWrapText(false)
	var total float32
	for _, r := range runs {
		tbl.Append([]string{
			strconv.Itoa(r.Start),
			strconv.Itoa(r.End),
			strconv.Quote(r.Text()),
			e.fontName(r.Font),
			r.Color.Hex(),
			r.Tracking.String(),
			strconv.Itoa(uniseg.StringWidth(r.Text())),
			formatWidth(r.Width),
		})
		total += r.Width
	}
	tbl.SetFooter([]string{"", "", "", "", "", "", "Total", formatWidth(total)})
	tbl.Render()
	return nil
}

func formatWidth(w float32) string {
	return strconv.FormatFloat(float64(w), 'f', 1, 32)
}

// writeSpans prints the committed spans of every layer, one per line. Fonts
// are printed by their script names.
func writeSpans(w io.Writer, e *env) {
	for _, s := range e.s.FontSpans() {
		fmt.Fprintf(w, "font [%d,%d): %s\n", s.Start, s.End, e.fontName(s.Value))
	}
	for _, s := range e.s.ColorSpans() {
		fmt.Fprintf(w, "color %s\n", s)
	}
	for _, s := range e.s.TrackingSpans() {
		fmt.Fprintf(w, "tracking %s\n", s)
	}
}

// writeStats prints a summary of run lengths and, when there is more than one
// run, an ASCII plot of run widths.
func writeStats(w io.Writer, e *env, shaper shaping.Shaper) error {
	runs, err := shaping.ShapeString(e.s, shaper)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "runs: %d runes: %d\n", len(runs), e.s.Len())
	if len(runs) == 0 {
		return nil
	}
	hist := hdrhistogram.New(1, int64(e.s.Len()), 3)
	widths := make([]float64, len(runs))
	for i, r := range runs {
		if err := hist.RecordValue(int64(r.Len())); err != nil {
			return errors.Wrapf(err, "recording run [%d,%d)", r.Start, r.End)
		}
		widths[i] = float64(r.Width)
	}
	fmt.Fprintf(w, "run length: mean: %.1f p50: %d p90: %d max: %d\n",
		hist.Mean(), hist.ValueAtQuantile(50), hist.ValueAtQuantile(90), hist.Max())
	if len(widths) > 1 {
		fmt.Fprintf(w, "run width:\n%s\n", asciigraph.Plot(widths, asciigraph.Height(statsPlotHeight)))
	}
	return nil
}

const statsPlotHeight = 8
