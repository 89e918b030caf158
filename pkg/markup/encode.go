package markup

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownTokenType indicates an encoded token with an unrecognized type tag.
var ErrUnknownTokenType = errors.New("unknown token type")

// DecodeError reports which encoded token could not be decoded.
type DecodeError struct {
	// Path locates the token, e.g. "[2]" or "[2].value[0]".
	Path string
	Err  error
}

// Error returns the message with the token path.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode token %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// The wire structs fix the field order and carry the type tag. They serve
// both encoding/json and gopkg.in/yaml.v3.

type textWire struct {
	Type  TokenType `json:"type" yaml:"type"`
	Order int       `json:"order" yaml:"order"`
	Text  string    `json:"text" yaml:"text"`
}

type iconWire struct {
	Type       TokenType `json:"type" yaml:"type"`
	Order      int       `json:"order" yaml:"order"`
	IconName   string    `json:"iconName" yaml:"iconName"`
	Color      string    `json:"color,omitempty" yaml:"color,omitempty"`
	ColorToken string    `json:"colorToken,omitempty" yaml:"colorToken,omitempty"`
	Text       string    `json:"text" yaml:"text"`
}

type linkWire struct {
	Type  TokenType `json:"type" yaml:"type"`
	Order int       `json:"order" yaml:"order"`
	Text  string    `json:"text" yaml:"text"`
	Href  string    `json:"href,omitempty" yaml:"href,omitempty"`
}

type compoundWire struct {
	Type  TokenType `json:"type" yaml:"type"`
	Order int       `json:"order" yaml:"order"`
	Value []Token   `json:"value" yaml:"value"`
}

func (t Text) wire() textWire {
	return textWire{Type: TypeText, Order: t.Order, Text: t.Text}
}

func (t Icon) wire() iconWire {
	return iconWire{
		Type:       TypeIcon,
		Order:      t.Order,
		IconName:   t.IconName,
		Color:      t.Color,
		ColorToken: t.ColorToken,
		Text:       t.Text,
	}
}

func (t Link) wire() linkWire {
	return linkWire{Type: TypeLink, Order: t.Order, Text: t.Text, Href: t.Href}
}

func (t Compound) wire() compoundWire {
	value := t.Value
	if value == nil {
		value = []Token{}
	}
	return compoundWire{Type: TypeCompound, Order: t.Order, Value: value}
}

// MarshalJSON encodes the token with its type tag.
func (t Text) MarshalJSON() ([]byte, error) { return json.Marshal(t.wire()) }

// MarshalJSON encodes the token with its type tag.
func (t Icon) MarshalJSON() ([]byte, error) { return json.Marshal(t.wire()) }

// MarshalJSON encodes the token with its type tag.
func (t Link) MarshalJSON() ([]byte, error) { return json.Marshal(t.wire()) }

// MarshalJSON encodes the token with its type tag.
func (t Compound) MarshalJSON() ([]byte, error) { return json.Marshal(t.wire()) }

// MarshalYAML encodes the token with its type tag.
func (t Text) MarshalYAML() (interface{}, error) { return t.wire(), nil }

// MarshalYAML encodes the token with its type tag.
func (t Icon) MarshalYAML() (interface{}, error) { return t.wire(), nil }

// MarshalYAML encodes the token with its type tag.
func (t Link) MarshalYAML() (interface{}, error) { return t.wire(), nil }

// MarshalYAML encodes the token with its type tag.
func (t Compound) MarshalYAML() (interface{}, error) { return t.wire(), nil }

// rawToken is the union of all encoded token attributes.
type rawToken struct {
	Type       TokenType         `json:"type"`
	Order      int               `json:"order"`
	Text       string            `json:"text"`
	IconName   string            `json:"iconName"`
	Color      string            `json:"color"`
	ColorToken string            `json:"colorToken"`
	Href       string            `json:"href"`
	Value      []json.RawMessage `json:"value"`
}

// Decode parses a JSON array of encoded tokens, as produced by
// json.Marshal on a []Token.
func Decode(data []byte) ([]Token, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode tokens: %w", err)
	}
	return decodeAll(raws, "")
}

func decodeAll(raws []json.RawMessage, prefix string) ([]Token, error) {
	tokens := make([]Token, 0, len(raws))
	for i, raw := range raws {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		tok, err := decodeOne(raw, path)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func decodeOne(data json.RawMessage, path string) (Token, error) {
	var raw rawToken
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	switch raw.Type {
	case TypeText:
		return Text{Order: raw.Order, Text: raw.Text}, nil
	case TypeIcon:
		return Icon{
			Order:      raw.Order,
			IconName:   raw.IconName,
			Color:      raw.Color,
			ColorToken: raw.ColorToken,
			Text:       raw.Text,
		}, nil
	case TypeLink:
		return Link{Order: raw.Order, Text: raw.Text, Href: raw.Href}, nil
	case TypeCompound:
		value, err := decodeAll(raw.Value, path+".value")
		if err != nil {
			return nil, err
		}
		return Compound{Order: raw.Order, Value: value}, nil
	default:
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("%w %q", ErrUnknownTokenType, raw.Type)}
	}
}
