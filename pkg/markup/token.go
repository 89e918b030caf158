// Package markup defines the tokens produced by parsing UXPin inline markup.
//
// A Token is one of four value types, discriminated by Type():
//
//   - Text: a literal text run
//   - Icon: an icon(name|color) call plus the text that follows it
//   - Link: a link(text|href) call
//   - Compound: several of the above found in a single field
//
// Optional string attributes use "" for absent and are omitted when encoded.
// Tokens are plain values; nothing in this package mutates a token after
// construction.
package markup

// TokenType discriminates the token variants.
type TokenType string

const (
	TypeText     TokenType = "text"
	TypeIcon     TokenType = "icon"
	TypeLink     TokenType = "link"
	TypeCompound TokenType = "compound"
)

// Token is implemented by Text, Icon, Link and Compound.
type Token interface {
	// Type returns the variant tag.
	Type() TokenType
	// Index returns the token's order within its enclosing sequence.
	Index() int
	// WithIndex returns a copy of the token with its order set to i.
	WithIndex(i int) Token
}

// Text is a literal text run, trimmed of surrounding whitespace.
type Text struct {
	Order int
	Text  string
}

// Icon is an icon(name|color) call.
type Icon struct {
	Order    int
	IconName string
	// Color is the "#rrggbb" form of ColorToken when ColorToken is a hex
	// value, otherwise "". Named theme tokens are resolved by the renderer.
	Color string
	// ColorToken is the second call argument as written.
	ColorToken string
	// Text is the literal text following the call, up to the next call or
	// the end of the field.
	Text string
}

// Link is a link(text|href) call.
type Link struct {
	Order int
	Text  string
	// Href is "" when the call has no second argument.
	Href string
}

// Compound groups the elements of a single field. Inner tokens are
// numbered from zero independently of the outer sequence.
type Compound struct {
	Order int
	Value []Token
}

func (t Text) Type() TokenType     { return TypeText }
func (t Icon) Type() TokenType     { return TypeIcon }
func (t Link) Type() TokenType     { return TypeLink }
func (t Compound) Type() TokenType { return TypeCompound }

func (t Text) Index() int     { return t.Order }
func (t Icon) Index() int     { return t.Order }
func (t Link) Index() int     { return t.Order }
func (t Compound) Index() int { return t.Order }

func (t Text) WithIndex(i int) Token { t.Order = i; return t }
func (t Icon) WithIndex(i int) Token { t.Order = i; return t }
func (t Link) WithIndex(i int) Token { t.Order = i; return t }

// WithIndex only renumbers the compound itself; inner orders are local.
func (t Compound) WithIndex(i int) Token { t.Order = i; return t }

// NewCompound wraps elements in a Compound, renumbering them 0..n-1.
func NewCompound(order int, elements []Token) Compound {
	value := make([]Token, len(elements))
	for i, el := range elements {
		value[i] = el.WithIndex(i)
	}
	return Compound{Order: order, Value: value}
}

// Count returns the number of leaf tokens, descending into compounds.
func Count(tokens []Token) int {
	n := 0
	for _, tok := range tokens {
		if c, ok := tok.(Compound); ok {
			n += Count(c.Value)
			continue
		}
		n++
	}
	return n
}
