package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewMarkupTokenizer creates a tokenizer for the icon/link markup found
// inside a single field.
//
// Matchers are ordered by specificity:
// 1. Call openers "icon(" and "link(" (case-sensitive)
// 2. ")" and "|"
// 3. Text runs, which stop at any character that could start a structural token
// 4. A single rune, for characters that start a structural token but did not match one
func NewMarkupTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenIconOpen, "icon("),
		tokenizer.StringMatcherFunc(TokenLinkOpen, "link("),
		tokenizer.StringMatcherFunc(TokenClose, ")"),
		tokenizer.StringMatcherFunc(TokenPipe, "|"),

		TextMatcher(),
		SingleRuneMatcher(),
	)
}

// isMarkupStop reports whether r may begin a structural markup token.
func isMarkupStop(r rune) bool {
	return r == 'i' || r == 'l' || r == ')' || r == '|'
}

// TextMatcher matches a run of characters up to the next character that may
// begin a structural token.
func TextMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if byteStream, ok := stream.(tokenizer.ByteStream); ok {
			return textMatcherByte(byteStream)
		}
		return textMatcherRune(stream)
	}
}

// textMatcherByte only stops on ASCII bytes, so multi-byte UTF-8 sequences
// are never split.
func textMatcherByte(stream tokenizer.ByteStream) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok || isMarkupStop(rune(b)) {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}

	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenText, []rune(string(value)))
}

func textMatcherRune(stream tokenizer.Stream) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok || isMarkupStop(r) {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}

	return tokenizer.NewToken(TokenText, value)
}

// SingleRuneMatcher consumes exactly one rune as text. It is the fallback
// for an 'i' or 'l' that does not open a call.
func SingleRuneMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok {
			return nil
		}
		stream.NextChar()
		return tokenizer.NewToken(TokenText, []rune{r})
	}
}
