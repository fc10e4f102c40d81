// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/textkit/attrtext"
	"github.com/textkit/attrtext/fontreg"
	"github.com/textkit/attrtext/internal/strparse"
)

// env is the state built up by a script.
type env struct {
	opts  *attrtext.Options
	reg   *fontreg.Registry
	s     *attrtext.AttrString
	fonts map[string]attrtext.FontID
	names map[attrtext.FontID]string
}

// loadOptions reads the options file at path, if any, and configures the
// logger.
func loadOptions(path string, verbose bool) (*attrtext.Options, error) {
	opts := &attrtext.Options{Logger: attrtext.NoopLogger{}}
	if verbose {
		opts.Logger = attrtext.DefaultLogger{}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := opts.Parse(string(data)); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
	}
	opts = opts.EnsureDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func newEnv(opts *attrtext.Options) *env {
	return &env{
		opts:  opts,
		reg:   fontreg.New(opts.Logger),
		s:     attrtext.New("", opts),
		fonts: make(map[string]attrtext.FontID),
		names: make(map[attrtext.FontID]string),
	}
}

// fontName returns the script name of a font.
func (e *env) fontName(id attrtext.FontID) string {
	if name, ok := e.names[id]; ok {
		return name
	}
	return id.String()
}

// runScript executes every command read from r.
func (e *env) runScript(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := strparse.Catch(func() { e.exec(line) }); err != nil {
			return errors.Wrapf(err, "line %d", lineNum)
		}
	}
	return scanner.Err()
}

// exec runs a single command. Errors are raised as panics and recovered by
// runScript.
func (e *env) exec(line string) {
	p := strparse.MakeParser("[,)", line)
	cmd := p.Next()
	switch cmd {
	case "face":
		name := p.Next()
		m := fontreg.FaceMetrics{Ascender: p.Float32(), Descender: p.Float32(), Height: p.Float32()}
		must(e.reg.RegisterFace(name, m))

	case "font":
		name := p.Next()
		if name == "default" {
			p.Errf("font name %q is reserved", name)
		}
		if _, ok := e.fonts[name]; ok {
			p.Errf("font %q already defined", name)
		}
		faceName := p.Next()
		size := p.Float32()
		face, ok := e.reg.Face(faceName)
		if !ok {
			p.Errf("unknown face %q", faceName)
		}
		id := must(e.reg.LoadFont(face, size))
		e.fonts[name] = id
		if _, ok := e.names[id]; !ok {
			e.names[id] = name
		}

	case "append":
		e.s.Append(parseText(&p))
		return

	case "current-font":
		e.s.SetCurrentFont(e.parseFont(&p))

	case "current-color":
		e.s.SetCurrentColor(parseColor(&p))

	case "current-tracking":
		e.s.SetCurrentTracking(parseTracking(&p))

	case "set-font":
		start, end := parseRange(&p)
		e.s.SetFont(start, end, e.parseFont(&p))

	case "set-color":
		start, end := parseRange(&p)
		e.s.SetColor(start, end, parseColor(&p))

	case "set-tracking":
		start, end := parseRange(&p)
		e.s.SetTracking(start, end, parseTracking(&p))

	case "clear-font":
		start, end := parseRange(&p)
		e.s.ClearFont(start, end)

	case "clear-color":
		start, end := parseRange(&p)
		e.s.ClearColor(start, end)

	case "commit":
		e.s.Commit()

	default:
		p.Errf("unknown command %q", cmd)
	}
	if !p.Done() {
		p.Errf("unexpected trailing input %q", p.Remaining())
	}
}

func must[V any](v V, err error) V {
	if err != nil {
		panic(err)
	}
	return v
}

// parseText parses the rest of the line as text, unquoting it if it starts
// with a double quote.
func parseText(p *strparse.Parser) string {
	text := p.Rest()
	if strings.HasPrefix(text, `"`) {
		s, err := strconv.Unquote(text)
		if err != nil {
			p.Errf("invalid quoted text: %v", err)
		}
		return s
	}
	return text
}

// parseRange parses a [start,end) range. Invalid ranges are rejected here so
// that they surface as script errors rather than assertion failures.
func parseRange(p *strparse.Parser) (start, end int) {
	start, end = p.Interval()
	if start < 0 || start >= end {
		p.Errf("invalid range [%d,%d)", start, end)
	}
	return start, end
}

func (e *env) parseFont(p *strparse.Parser) attrtext.FontID {
	name := p.Next()
	if name == "default" {
		return attrtext.DefaultFont
	}
	id, ok := e.fonts[name]
	if !ok {
		p.Errf("unknown font %q", name)
	}
	return id
}

func parseColor(p *strparse.Parser) attrtext.Color {
	c, err := attrtext.ParseColor(p.Next())
	if err != nil {
		p.Errf("%v", err)
	}
	return c
}

func parseTracking(p *strparse.Parser) attrtext.Tracking {
	t, err := attrtext.ParseTracking(p.Next())
	if err != nil {
		p.Errf("%v", err)
	}
	return t
}
