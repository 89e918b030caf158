// Package scanner recognizes icon(...) and link(...) calls and text runs in
// split fields and assembles the ordered token list.
//
// Each field is lexed by the markup tokenizer and walked by a three-state
// machine (scanning text, in an icon call, in a link call). A call runs from
// its opener to the first ")"; its arguments split at the first "|". An
// opener with no ")" after it in the field, or one directly after a letter
// or digit as in "ilink(", is literal text. Scanning is
// linear in the field length and never fails.
package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shapestone/shape-uxpin/internal/normalize"
	"github.com/shapestone/shape-uxpin/internal/tokenizer"
	"github.com/shapestone/shape-uxpin/pkg/markup"
)

// Options configures value normalization.
type Options struct {
	// DefaultScheme is prefixed to link hrefs without a scheme. Default: "http://"
	DefaultScheme string
}

// DefaultOptions returns default scanner options.
func DefaultOptions() Options {
	return Options{
		DefaultScheme: normalize.DefaultScheme,
	}
}

type state int

const (
	stateText state = iota
	stateIconCall
	stateLinkCall
)

type lexeme struct {
	kind  string
	value string
}

// Scanner turns fields into tokens. A Scanner holds only options and is
// safe for concurrent use.
type Scanner struct {
	opts Options
}

// New creates a Scanner.
func New(opts Options) *Scanner {
	if opts.DefaultScheme == "" {
		opts.DefaultScheme = normalize.DefaultScheme
	}
	return &Scanner{opts: opts}
}

// ScanRows scans every field of every row in order. A field with one
// element contributes that element; a field with several contributes one
// Compound. Top-level orders run 0..n-1 across the whole result.
func (s *Scanner) ScanRows(rows [][]string) []markup.Token {
	tokens := make([]markup.Token, 0, len(rows))

	for _, row := range rows {
		for _, field := range row {
			elements := s.ScanField(field)
			switch len(elements) {
			case 0:
				continue
			case 1:
				tokens = append(tokens, elements[0].WithIndex(len(tokens)))
			default:
				tokens = append(tokens, markup.NewCompound(len(tokens), elements))
			}
		}
	}

	return tokens
}

// ScanField returns the elements recognized in a single field, numbered
// 0..n-1. Whitespace-only fields yield no elements.
func (s *Scanner) ScanField(field string) []markup.Token {
	lexemes := lex(field)

	lastClose := -1
	for i, lx := range lexemes {
		if lx.kind == tokenizer.TokenClose {
			lastClose = i
		}
	}

	b := &fieldBuilder{opts: s.opts, trailing: -1}
	st := stateText

	var left, right strings.Builder
	sawPipe := false

	for i, lx := range lexemes {
		switch st {
		case stateText:
			switch lx.kind {
			case tokenizer.TokenIconOpen, tokenizer.TokenLinkOpen:
				if i > lastClose || (i > 0 && endsInWord(lexemes[i-1].value)) {
					b.pending.WriteString(lx.value)
					continue
				}
				b.flushText()
				left.Reset()
				right.Reset()
				sawPipe = false
				if lx.kind == tokenizer.TokenIconOpen {
					st = stateIconCall
				} else {
					st = stateLinkCall
				}
			default:
				b.pending.WriteString(lx.value)
			}

		case stateIconCall, stateLinkCall:
			switch {
			case lx.kind == tokenizer.TokenClose:
				if st == stateIconCall {
					b.icon(left.String(), right.String(), sawPipe)
				} else {
					b.link(left.String(), right.String(), sawPipe)
				}
				st = stateText
			case lx.kind == tokenizer.TokenPipe && !sawPipe:
				sawPipe = true
			case sawPipe:
				right.WriteString(lx.value)
			default:
				left.WriteString(lx.value)
			}
		}
	}

	b.flushText()
	return b.elements
}

// endsInWord reports whether s ends in a letter or digit.
func endsInWord(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// lex runs the markup tokenizer over field.
func lex(field string) []lexeme {
	tok := tokenizer.NewMarkupTokenizer()
	tok.Initialize(strings.ToValidUTF8(field, string(utf8.RuneError)))

	var lexemes []lexeme
	for {
		token, ok := tok.NextToken()
		if !ok {
			break
		}
		lexemes = append(lexemes, lexeme{kind: token.Kind(), value: token.ValueString()})
	}
	return lexemes
}

// fieldBuilder accumulates the elements of one field.
type fieldBuilder struct {
	opts     Options
	elements []markup.Token
	pending  strings.Builder
	// trailing is the index of the icon that owns pending text, or -1.
	trailing int
}

// flushText ends the current text run. The run becomes the trailing text of
// the preceding icon when there is one, otherwise a Text element.
func (b *fieldBuilder) flushText() {
	text := normalize.Trim(b.pending.String())
	b.pending.Reset()

	if b.trailing >= 0 {
		if icon, ok := b.elements[b.trailing].(markup.Icon); ok {
			icon.Text = text
			b.elements[b.trailing] = icon
		}
		b.trailing = -1
		return
	}

	if text != "" {
		b.add(markup.Text{Text: text})
	}
}

func (b *fieldBuilder) icon(left, right string, sawPipe bool) {
	icon := markup.Icon{IconName: normalize.Trim(left)}
	if sawPipe {
		if token := normalize.Trim(right); token != "" {
			icon.ColorToken = token
			icon.Color = normalize.NormalizeColor(token)
		}
	}
	b.add(icon)
	b.trailing = len(b.elements) - 1
}

// link adds a Link unless the argument list is empty.
func (b *fieldBuilder) link(left, right string, sawPipe bool) {
	text := normalize.Trim(left)
	if text == "" && !sawPipe {
		return
	}

	link := markup.Link{Text: text}
	if sawPipe {
		if href := normalize.Trim(right); href != "" {
			link.Href = normalize.NormalizeHrefWithScheme(href, b.opts.DefaultScheme)
		}
	}
	b.add(link)
}

func (b *fieldBuilder) add(tok markup.Token) {
	b.elements = append(b.elements, tok.WithIndex(len(b.elements)))
}
