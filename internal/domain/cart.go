package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Scalar is a client-supplied value kept exactly as it was sent, along with
// whether it arrived as a JSON number.
type Scalar struct {
	text   string
	number bool
}

// TextScalar wraps a value that arrived as text, such as a form field.
func TextScalar(s string) Scalar {
	return Scalar{text: s}
}

// NumberScalar wraps the literal of a JSON number.
func NumberScalar(literal string) Scalar {
	return Scalar{text: literal, number: true}
}

func (s *Scalar) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decode scalar: %w", err)
	}

	switch t := v.(type) {
	case nil:
		*s = Scalar{}
	case string:
		*s = TextScalar(t)
	case json.Number:
		*s = NumberScalar(t.String())
	case bool:
		*s = TextScalar(strconv.FormatBool(t))
	default:
		return fmt.Errorf("%w: scalar must be a string, number, or boolean", ErrInvalidInput)
	}
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if _, ok := s.Float(); s.number && ok {
		return []byte(s.text), nil
	}
	return json.Marshal(s.text)
}

func (s Scalar) String() string {
	return s.text
}

// IsNumber reports whether the value arrived as a JSON number.
func (s Scalar) IsNumber() bool {
	return s.number
}

// Float parses the value as a number. ok is false for non-numeric text.
func (s Scalar) Float() (f float64, ok bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s.text), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Equal reports whether two values match loosely. Two text values match only
// when identical. When either side is a number, the text side is converted
// the way a browser converts it: surrounding space is ignored and empty
// text is zero.
func (s Scalar) Equal(other Scalar) bool {
	if !s.number && !other.number {
		return s.text == other.text
	}
	a, aok := s.numeric()
	b, bok := other.numeric()
	return aok && bok && a == b
}

func (s Scalar) numeric() (float64, bool) {
	if !s.number && strings.TrimSpace(s.text) == "" {
		return 0, true
	}
	return s.Float()
}

// CartItem is one line in the cart. There is no quantity: adding the same
// product twice produces two lines.
type CartItem struct {
	ID    Scalar `json:"id"`
	Name  string `json:"name"`
	Price Scalar `json:"price"`
}
