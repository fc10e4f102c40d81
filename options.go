// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package attrtext

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/unicode/norm"
)

// Normalization selects the Unicode normalization form applied to text as it
// is appended to an AttrString.
type Normalization int8

const (
	// NormalizeNone stores appended text as is.
	NormalizeNone Normalization = iota
	// NormalizeNFC converts each appended chunk to Normalization Form C.
	// Chunks are normalized independently: a combining mark appended on its
	// own does not compose with the text that precedes it, which keeps
	// previously returned indices stable.
	NormalizeNFC
)

// String implements fmt.Stringer.
func (n Normalization) String() string {
	switch n {
	case NormalizeNone:
		return "none"
	case NormalizeNFC:
		return "nfc"
	default:
		return fmt.Sprintf("Normalization(%d)", int8(n))
	}
}

func (n Normalization) apply(s string) string {
	if n == NormalizeNFC {
		return norm.NFC.String(s)
	}
	return s
}

// Options holds the optional parameters for constructing an AttrString.
type Options struct {
	// DefaultFont is reported for runs that carry no font attribute.
	DefaultFont FontID

	// DefaultColor is reported for runs that carry no color attribute. The
	// zero Color (transparent black) is replaced by White in EnsureDefaults.
	DefaultColor Color

	// Normalization is applied to every chunk of appended text.
	Normalization Normalization

	// Logger used to report events such as overlapping spans passed to
	// SetFontSpans. Defaults to DefaultLogger.
	Logger Logger
}

// EnsureDefaults ensures that the default values for all options are set if a
// valid value was not already specified. Returns the new options.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.DefaultColor == (Color{}) {
		o.DefaultColor = White
	}
	if o.Logger == nil {
		o.Logger = DefaultLogger{}
	}
	return o
}

// Clone creates a shallow-copy of the supplied options.
func (o *Options) Clone() *Options {
	n := &Options{}
	if o != nil {
		*n = *o
	}
	return n
}

// String writes the options in an INI-like format that Parse accepts.
func (o *Options) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "[Options]\n")
	fmt.Fprintf(&buf, "  default_color=%s\n", o.DefaultColor.Hex())
	fmt.Fprintf(&buf, "  default_font=%d\n", uint32(o.DefaultFont))
	fmt.Fprintf(&buf, "  normalization=%s\n", o.Normalization)
	return buf.String()
}

// Parse parses the options from the specified string. Note that certain
// options cannot be parsed into populated fields. For example, the Logger
// option is not reconstructed.
func (o *Options) Parse(s string) error {
	return parseOptions(s, func(section, key, value string) error {
		if section != "Options" {
			return errors.Errorf("attrtext: unknown section: %q", errors.Safe(section))
		}
		var err error
		switch key {
		case "default_color":
			o.DefaultColor, err = ParseColor(value)
		case "default_font":
			var v uint64
			v, err = strconv.ParseUint(value, 10, 32)
			o.DefaultFont = FontID(v)
		case "normalization":
			switch value {
			case "none":
				o.Normalization = NormalizeNone
			case "nfc":
				o.Normalization = NormalizeNFC
			default:
				err = errors.Errorf("unknown normalization %q", errors.Safe(value))
			}
		default:
			return errors.Errorf("attrtext: unknown option: %s.%s",
				errors.Safe(section), errors.Safe(key))
		}
		if err != nil {
			return errors.Wrapf(err, "attrtext: invalid value for %s.%s", errors.Safe(section), errors.Safe(key))
		}
		return nil
	})
}

// Validate verifies that the options are mutually consistent. Validate assumes
// EnsureDefaults has been called.
func (o *Options) Validate() error {
	var buf strings.Builder
	if o.Normalization < NormalizeNone || o.Normalization > NormalizeNFC {
		fmt.Fprintf(&buf, "Normalization (%d) must be none or nfc\n", o.Normalization)
	}
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"R", o.DefaultColor.R},
		{"G", o.DefaultColor.G},
		{"B", o.DefaultColor.B},
		{"A", o.DefaultColor.A},
	} {
		if c.v < 0 || c.v > 1 {
			fmt.Fprintf(&buf, "DefaultColor.%s (%g) must be in [0, 1]\n", c.name, c.v)
		}
	}
	if o.Logger == nil {
		fmt.Fprintf(&buf, "Logger must be set\n")
	}
	if buf.Len() == 0 {
		return nil
	}
	return errors.New(buf.String())
}

// parseOptions walks an INI-like document, calling visit for every key=value
// pair along with the section it appears in. Blank lines and lines starting
// with ';' or '#' are skipped.
func parseOptions(s string, visit func(section, key, value string) error) error {
	var section string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == ';' || line[0] == '#' {
			continue
		}
		n := len(line)
		if line[0] == '[' && line[n-1] == ']' {
			section = line[1 : n-1]
			continue
		}
		pos := strings.Index(line, "=")
		if pos < 0 {
			const maxLen = 50
			if len(line) > maxLen {
				line = line[:maxLen-3] + "..."
			}
			return errors.Errorf("attrtext: invalid key=value syntax: %q", errors.Safe(line))
		}
		key := strings.TrimSpace(line[:pos])
		value := strings.TrimSpace(line[pos+1:])
		if err := visit(section, key, value); err != nil {
			return err
		}
	}
	return nil
}
