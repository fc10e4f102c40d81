// Copyright 2019 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package lint

import (
	"bytes"
	"go/build"
	"os/exec"
	"runtime"
	"testing"

	"github.com/ghemawat/stream"
)

const root = "github.com/textkit/attrtext"

func dirCmd(
	t *testing.T, dir string, name string, args ...string,
) stream.Filter {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	switch err.(type) {
	case nil:
	case *exec.ExitError:
		// Non-zero exit is expected.
	default:
		t.Fatal(err)
	}
	return stream.ReadLines(bytes.NewReader(out))
}

func ignoreGoMod() stream.Filter {
	return stream.GrepNot(`^go: (finding|extracting|downloading)`)
}

// grepGo searches the module's Go sources, skipping directories whose names
// start with an underscore.
func grepGo(t *testing.T, dir string, pattern string) stream.Filter {
	return stream.Sequence(
		dirCmd(t, dir, "grep", "-rnE", "--include=*.go", "--exclude-dir=_*", pattern, "."),
		stream.GrepNot(`^\./internal/lint/`),
	)
}

func TestLint(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("lint checks skipped on Windows")
	}

	pkg, err := build.Import(root, "../..", 0)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("TestGoVet", func(t *testing.T) {
		t.Parallel()

		if err := stream.ForEach(
			stream.Sequence(
				dirCmd(t, pkg.Dir, "go", "vet", "-all", "./..."),
				stream.GrepNot(`^#`), // ignore comment lines
				ignoreGoMod(),
			), func(s string) {
				t.Errorf("\n%s", s)
			}); err != nil {
			t.Error(err)
		}
	})

	t.Run("TestFmtErrorf", func(t *testing.T) {
		t.Parallel()

		if err := stream.ForEach(
			grepGo(t, pkg.Dir, `fmt\.Errorf\(`), func(s string) {
				t.Errorf("\n%s <- please use \"errors.Errorf\" instead", s)
			}); err != nil {
			t.Error(err)
		}
	})

	t.Run("TestStdlibErrors", func(t *testing.T) {
		t.Parallel()

		if err := stream.ForEach(
			grepGo(t, pkg.Dir, `^\s*"errors"$`), func(s string) {
				t.Errorf("\n%s <- please use \"github.com/cockroachdb/errors\" instead", s)
			}); err != nil {
			t.Error(err)
		}
	})

	t.Run("TestMathRandV1", func(t *testing.T) {
		t.Parallel()

		// math/rand is only used where a *rand.Rand feeds a metamorphic deck.
		if err := stream.ForEach(
			stream.Sequence(
				grepGo(t, pkg.Dir, `^\s*"math/rand"$`),
				stream.GrepNot(`_test\.go:`),
			), func(s string) {
				t.Errorf("\n%s <- please use \"math/rand/v2\" instead", s)
			}); err != nil {
			t.Error(err)
		}
	})
}
