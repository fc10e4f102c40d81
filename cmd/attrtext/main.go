// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	optionsPath string
	verbose     bool
	defaultSize float32 = 16
)

var rootCmd = &cobra.Command{
	Use:   "attrtext [command] (flags)",
	Short: "attributed text inspection tool",
	Long: `
Runs scripts that build an attributed string and prints the resulting runs,
attribute spans or run statistics. A script holds one command per line:

  face <name> <ascender> <descender> <height>
  font <name> <face> <size>
  append <text>|"<quoted text>"
  current-font <font>|default
  current-color <#rrggbb[aa]>
  current-tracking <value>|default
  set-font [<start>,<end>) <font>|default
  set-color [<start>,<end>) <#rrggbb[aa]>
  set-tracking [<start>,<end>) <value>|default
  clear-font [<start>,<end>)
  clear-color [<start>,<end>)
  commit

Blank lines and lines starting with '#' are ignored.
`,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(runsCmd, spansCmd, statsCmd)

	for _, cmd := range []*cobra.Command{runsCmd, spansCmd, statsCmd} {
		cmd.Flags().StringVar(
			&optionsPath, "options", "", "path to an attrtext options file")
		cmd.Flags().BoolVarP(
			&verbose, "verbose", "v", false, "enable verbose event logging")
	}
	for _, cmd := range []*cobra.Command{runsCmd, statsCmd} {
		cmd.Flags().Float32Var(
			&defaultSize, "default-size", defaultSize, "size of the default font in pixels")
	}

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
