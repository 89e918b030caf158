// Package uxpin parses the inline markup used in UXPin text properties.
//
// Content is CSV-like: rows are separated by line breaks and fields by
// commas, with standard '"' quoting for fields that contain commas, quotes
// or line breaks. Inside each field the markup recognizes:
//
//	icon(<name>[|<colorOrToken>])[<trailing text>]
//	link(<text>[|<href>])
//
// and plain text runs. Parsing produces a flat, ordered list of
// markup.Token values; a field with more than one element becomes a single
// markup.Compound.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple
// goroutines. Each call builds its own splitter and scanner.
//
// # Example
//
//	tokens := uxpin.Parse("link(Tahlia|www.paypal.com) ran a test. icon(Home|#ff8800)")
//	c := tokens[0].(markup.Compound)
//	// c.Value[0] is markup.Link{Text: "Tahlia", Href: "http://www.paypal.com"}
//	// c.Value[1] is markup.Text{Order: 1, Text: "ran a test."}
//	// c.Value[2] is markup.Icon{Order: 2, IconName: "Home", Color: "#ff8800", ColorToken: "#ff8800"}
//
// Parsing never fails: unterminated quotes absorb the rest of the input,
// unterminated calls are read as text, and blank input yields no tokens.
package uxpin

import (
	"fmt"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-uxpin/internal/scanner"
	"github.com/shapestone/shape-uxpin/internal/splitter"
	"github.com/shapestone/shape-uxpin/pkg/markup"
)

// Split splits input into rows of fields, honoring CSV quoting.
//
// Fields are not trimmed:
//
//	uxpin.Split("one, two, three")
//	// [][]string{{"one", " two", " three"}}
//
// Blank or whitespace-only input yields an empty result.
func Split(input string) [][]string {
	return splitter.Strings(SplitNode(input))
}

// SplitNode splits input like Split and returns the rows as an AST: an
// *ast.ArrayDataNode of records, each an *ast.ArrayDataNode of
// *ast.LiteralNode string fields with source positions.
func SplitNode(input string) *ast.ArrayDataNode {
	return SplitNodeWithOptions(input, DefaultOptions())
}

// SplitWithOptions is Split with a custom delimiter.
func SplitWithOptions(input string, opts Options) [][]string {
	return splitter.Strings(SplitNodeWithOptions(input, opts))
}

// SplitNodeWithOptions is SplitNode with a custom delimiter.
func SplitNodeWithOptions(input string, opts Options) *ast.ArrayDataNode {
	opts = opts.withDefaults()
	return splitter.Split(input, splitter.Options{Comma: opts.Comma})
}

// Parse parses input into tokens using DefaultOptions.
func Parse(input string) []markup.Token {
	return ParseWithOptions(input, DefaultOptions())
}

// ParseWithOptions parses input into tokens.
//
// Top-level tokens are numbered 0..n-1 in emission order across all rows
// and fields.
func ParseWithOptions(input string, opts Options) []markup.Token {
	opts = opts.withDefaults()
	rows := SplitWithOptions(input, opts)
	return scanner.New(scanner.Options{DefaultScheme: opts.DefaultScheme}).ScanRows(rows)
}

// ParseReader reads all of reader and parses it with DefaultOptions.
// The only errors are read errors.
func ParseReader(reader io.Reader) ([]markup.Token, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read markup: %w", err)
	}
	return Parse(string(data)), nil
}

// Format returns the format identifier for this parser.
func Format() string {
	return "UXPin"
}
