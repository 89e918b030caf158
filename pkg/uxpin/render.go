package uxpin

import (
	"strings"

	"github.com/shapestone/shape-uxpin/pkg/markup"
)

// Render converts tokens back into markup text using DefaultOptions.
//
// Each top-level token is written as one field on its own line; a
// Compound's elements are joined with a space inside one field. Fields
// containing the delimiter, quotes or line breaks are quoted with inner
// quotes doubled.
//
// For tokens produced by Parse, parsing the rendered text yields the same
// tokens. In a Compound, a Text that follows an Icon without trailing text is
// preceded by an empty "link()" so it is not read back as the icon's text.
// Hand-built token lists may not survive the trip: text that itself contains
// a standalone "icon(" or "link(" is read back as a call.
//
// Example:
//
//	tokens := uxpin.Parse("link(Docs|docs.example.com), C-1")
//	uxpin.Render(tokens)
//	// "link(Docs|http://docs.example.com)\nC-1\n"
func Render(tokens []markup.Token) string {
	return RenderWithOptions(tokens, DefaultOptions())
}

// RenderWithOptions is Render with a custom delimiter.
func RenderWithOptions(tokens []markup.Token, opts Options) string {
	opts = opts.withDefaults()

	rows := make([][]string, 0, len(tokens))
	for _, tok := range tokens {
		field, ok := renderToken(tok)
		if !ok {
			continue
		}
		rows = append(rows, []string{field})
	}
	return JoinWithOptions(rows, opts)
}

// renderToken renders one token as field text. Unknown token
// implementations are skipped.
func renderToken(tok markup.Token) (string, bool) {
	switch t := tok.(type) {
	case markup.Text:
		return t.Text, true

	case markup.Icon:
		var sb strings.Builder
		sb.WriteString("icon(")
		sb.WriteString(t.IconName)
		if t.ColorToken != "" {
			sb.WriteByte('|')
			sb.WriteString(t.ColorToken)
		}
		sb.WriteByte(')')
		if t.Text != "" {
			sb.WriteByte(' ')
			sb.WriteString(t.Text)
		}
		return sb.String(), true

	case markup.Link:
		var sb strings.Builder
		sb.WriteString("link(")
		sb.WriteString(t.Text)
		if t.Href != "" {
			sb.WriteByte('|')
			sb.WriteString(t.Href)
		}
		sb.WriteByte(')')
		return sb.String(), true

	case markup.Compound:
		parts := make([]string, 0, len(t.Value))
		var prev markup.Token
		for _, el := range t.Value {
			part, ok := renderToken(el)
			if !ok {
				continue
			}
			if endsTrailing(prev, el) {
				parts = append(parts, "link()")
			}
			parts = append(parts, part)
			prev = el
		}
		return strings.Join(parts, " "), len(parts) > 0

	default:
		return "", false
	}
}

// endsTrailing reports whether next would be absorbed as the trailing text
// of prev.
func endsTrailing(prev, next markup.Token) bool {
	icon, ok := prev.(markup.Icon)
	if !ok || icon.Text != "" {
		return false
	}
	_, ok = next.(markup.Text)
	return ok
}

// Join writes rows as CSV text. Split(Join(rows)) returns rows unless a
// row has no fields or every field is whitespace. Every row, including the
// last, ends with "\n".
func Join(rows [][]string) string {
	return JoinWithOptions(rows, DefaultOptions())
}

// JoinWithOptions is Join with a custom delimiter.
func JoinWithOptions(rows [][]string, opts Options) string {
	opts = opts.withDefaults()

	var sb strings.Builder
	for _, row := range rows {
		// A lone empty field would read back as a blank line.
		if len(row) == 1 && row[0] == "" {
			sb.WriteString("\"\"\n")
			continue
		}
		for i, field := range row {
			if i > 0 {
				sb.WriteRune(opts.Comma)
			}
			writeField(&sb, field, opts.Comma)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// writeField writes a field, quoting it when it contains the delimiter,
// quotes, newlines or carriage returns. Quotes within quoted fields are
// doubled.
func writeField(sb *strings.Builder, value string, delim rune) {
	needsQuoting := strings.ContainsRune(value, delim) || strings.ContainsAny(value, "\"\n\r")
	if !needsQuoting {
		sb.WriteString(value)
		return
	}

	sb.WriteByte('"')
	for _, ch := range value {
		if ch == '"' {
			sb.WriteString(`""`)
		} else {
			sb.WriteRune(ch)
		}
	}
	sb.WriteByte('"')
}
