package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Options configures the CSV tokenizer.
type Options struct {
	// Comma is the field delimiter. Default: ','
	Comma rune
}

// DefaultOptions returns default tokenizer options.
func DefaultOptions() Options {
	return Options{
		Comma: ',',
	}
}

// NewTokenizer creates a CSV tokenizer with the default comma delimiter.
//
// Field content depends on whether the splitter is inside a quoted section,
// so tokenization happens at the character level:
// 1. Newlines (CRLF before LF, lone CR last)
// 2. Comma (or custom delimiter)
// 3. Double quote
// 4. Field content (any non-delimiter character)
func NewTokenizer() tokenizer.Tokenizer {
	return NewTokenizerWithOptions(DefaultOptions())
}

// NewTokenizerWithOptions creates a CSV tokenizer with custom options.
func NewTokenizerWithOptions(opts Options) tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenNewline, "\r\n"),
		tokenizer.StringMatcherFunc(TokenNewline, "\n"),
		tokenizer.StringMatcherFunc(TokenNewline, "\r"),

		tokenizer.StringMatcherFunc(TokenComma, string(opts.Comma)),
		tokenizer.StringMatcherFunc(TokenDQuote, `"`),

		FieldContentMatcherWithDelim(opts.Comma),
	)
}

// NewTokenizerWithStream creates a CSV tokenizer over a pre-configured stream.
func NewTokenizerWithStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	return NewTokenizerWithStreamAndOptions(stream, DefaultOptions())
}

// NewTokenizerWithStreamAndOptions creates a CSV tokenizer over a stream with custom options.
func NewTokenizerWithStreamAndOptions(stream tokenizer.Stream, opts Options) tokenizer.Tokenizer {
	tok := NewTokenizerWithOptions(opts)
	tok.InitializeFromStream(stream)
	return tok
}

// FieldContentMatcherWithDelim matches runs of characters that are not the
// delimiter, a quote, CR or LF.
//
// Grammar:
//
//	Field = Character+ ;
//	Character = <any character except delimiter, quote, CR, LF> ;
func FieldContentMatcherWithDelim(delim rune) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if delim < 128 {
			if byteStream, ok := stream.(tokenizer.ByteStream); ok {
				return fieldContentMatcherByte(byteStream, byte(delim))
			}
		}
		return fieldContentMatcherRune(stream, delim)
	}
}

func fieldContentMatcherByte(stream tokenizer.ByteStream, delim byte) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok {
			break
		}
		if b == delim || b == '"' || b == '\n' || b == '\r' {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}

	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenField, []rune(string(value)))
}

func fieldContentMatcherRune(stream tokenizer.Stream, delim rune) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok {
			break
		}
		if r == delim || r == '"' || r == '\n' || r == '\r' {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}

	return tokenizer.NewToken(TokenField, value)
}
