// Package tokenizer provides the CSV and markup lexers used by shape-uxpin,
// both built on Shape's tokenizer framework.
package tokenizer

// CSV token kinds.
//
// The CSV tokenizer emits character-level tokens. The splitter decides
// field boundaries and tracks quoted sections.
const (
	TokenComma   = "Comma"   // , (field separator)
	TokenDQuote  = "DQuote"  // " (quote delimiter)
	TokenNewline = "Newline" // \r\n, \n or \r (line terminator)
	TokenField   = "Field"   // run of non-delimiter characters
)

// Markup token kinds.
//
// Only the call openers, the closing parenthesis and the argument separator
// are structural. Everything else is TokenText; the scanner decides whether a
// structural token is literal based on its state.
const (
	TokenIconOpen = "IconOpen" // icon(
	TokenLinkOpen = "LinkOpen" // link(
	TokenClose    = "Close"    // )
	TokenPipe     = "Pipe"     // |
	TokenText     = "Text"     // literal text
)
