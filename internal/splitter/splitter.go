// Package splitter splits markup content into rows of fields, honoring CSV
// quoting.
//
// Grammar:
//
//	File          = { Record } ;
//	Record        = Field { Delimiter Field } [ LineTerminator ] ;
//	Field         = { UnquotedChar | QuotedSection } ;
//	QuotedSection = '"' { QuotedChar | '""' } [ '"' ] ;
//
// A quoted section may open anywhere in a field, so text such as
// icon(Check) "Done, 3 sec" stays one field. The splitter is permissive: it
// never fails, and an unterminated quoted section absorbs the rest of the
// input. Fields are UTF-8: each run of invalid bytes in the input becomes
// one U+FFFD.
package splitter

import (
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-uxpin/internal/tokenizer"
)

// Options configures the splitter.
type Options struct {
	// Comma is the field delimiter. Default: ','
	Comma rune
}

// DefaultOptions returns default splitter options.
func DefaultOptions() Options {
	return Options{
		Comma: ',',
	}
}

// Splitter walks CSV tokens with a single token lookahead.
type Splitter struct {
	tokenizer *shapetokenizer.Tokenizer
	current   *shapetokenizer.Token
	hasToken  bool
	opts      Options
}

// Split splits input into records. Blank or whitespace-only input yields an
// empty array.
func Split(input string, opts Options) *ast.ArrayDataNode {
	if strings.TrimSpace(input) == "" {
		return ast.NewArrayDataNode([]ast.SchemaNode{}, ast.ZeroPosition())
	}
	return NewSplitterWithOptions(input, opts).Split()
}

// NewSplitterWithOptions creates a splitter for input with custom options.
func NewSplitterWithOptions(input string, opts Options) *Splitter {
	// The byte and rune views of a stream disagree on invalid UTF-8.
	input = strings.ToValidUTF8(input, string(utf8.RuneError))
	return NewSplitterFromStream(shapetokenizer.NewStream(input), opts)
}

// NewSplitterFromStream creates a splitter over a pre-configured stream,
// such as one from shapetokenizer.NewStreamFromReader.
func NewSplitterFromStream(stream shapetokenizer.Stream, opts Options) *Splitter {
	if opts.Comma == 0 {
		opts.Comma = ','
	}
	tok := tokenizer.NewTokenizerWithStreamAndOptions(stream, tokenizer.Options{Comma: opts.Comma})

	s := &Splitter{
		tokenizer: &tok,
		opts:      opts,
	}
	s.advance()
	return s
}

// Split consumes all tokens and returns an array of records, each an array
// of *ast.LiteralNode string fields. Blank lines are skipped.
func (s *Splitter) Split() *ast.ArrayDataNode {
	records := make([]ast.SchemaNode, 0, 16)

	for s.hasToken {
		record, blank := s.splitRecord()
		if blank {
			continue
		}
		records = append(records, record)
	}

	return ast.NewArrayDataNode(records, ast.ZeroPosition())
}

// splitRecord reads one record up to an unquoted line terminator or EOF.
// It reports blank for a record with no content and no quotes.
func (s *Splitter) splitRecord() (*ast.ArrayDataNode, bool) {
	startPos := s.position()
	fieldPos := startPos
	fields := make([]ast.SchemaNode, 0, 8)

	var value strings.Builder
	inQuotes := false
	sawQuote := false

	for s.hasToken {
		token := s.peek()

		switch token.Kind() {
		case tokenizer.TokenDQuote:
			sawQuote = true
			s.advance()
			if !inQuotes {
				inQuotes = true
				continue
			}
			if next := s.peek(); next != nil && next.Kind() == tokenizer.TokenDQuote {
				value.WriteByte('"')
				s.advance()
				continue
			}
			inQuotes = false

		case tokenizer.TokenComma:
			s.advance()
			if inQuotes {
				value.WriteString(token.ValueString())
				continue
			}
			fields = append(fields, ast.NewLiteralNode(value.String(), fieldPos))
			value.Reset()
			fieldPos = s.position()

		case tokenizer.TokenNewline:
			s.advance()
			if inQuotes {
				value.WriteString(token.ValueString())
				continue
			}
			return s.finishRecord(fields, value.String(), fieldPos, startPos, sawQuote)

		default:
			value.WriteString(token.ValueString())
			s.advance()
		}
	}

	return s.finishRecord(fields, value.String(), fieldPos, startPos, sawQuote)
}

func (s *Splitter) finishRecord(fields []ast.SchemaNode, last string, lastPos, startPos ast.Position, sawQuote bool) (*ast.ArrayDataNode, bool) {
	if len(fields) == 0 && last == "" && !sawQuote {
		return nil, true
	}
	fields = append(fields, ast.NewLiteralNode(last, lastPos))
	return ast.NewArrayDataNode(fields, startPos), false
}

// Strings flattens a split result into rows of field strings.
func Strings(node *ast.ArrayDataNode) [][]string {
	rows := make([][]string, 0, node.Len())
	for _, rec := range node.Elements() {
		recArr, ok := rec.(*ast.ArrayDataNode)
		if !ok {
			continue
		}
		row := make([]string, 0, recArr.Len())
		for _, field := range recArr.Elements() {
			lit, ok := field.(*ast.LiteralNode)
			if !ok {
				continue
			}
			str, _ := lit.Value().(string)
			row = append(row, str)
		}
		rows = append(rows, row)
	}
	return rows
}

// peek returns the current token without advancing.
func (s *Splitter) peek() *shapetokenizer.Token {
	return s.current
}

// advance moves to the next token.
func (s *Splitter) advance() {
	token, ok := s.tokenizer.NextToken()
	if ok {
		s.current = token
		s.hasToken = true
	} else {
		s.hasToken = false
		s.current = nil
	}
}

// position returns the current position for AST nodes.
func (s *Splitter) position() ast.Position {
	if s.hasToken && s.current != nil {
		return ast.NewPosition(
			s.current.Offset(),
			s.current.Row(),
			s.current.Column(),
		)
	}
	return ast.ZeroPosition()
}
