// Command uxpin splits, parses and renders UXPin inline markup.
//
// Usage:
//
//	uxpin parse [file]     print tokens as JSON or YAML
//	uxpin split [file]     print rows of fields
//	uxpin render [file]    turn JSON tokens back into markup
//	uxpin config           print the effective configuration
//
// Input is read from the file argument, or from stdin when it is absent or "-".
package main

import (
	"log/slog"
	"os"
)

func main() {
	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
