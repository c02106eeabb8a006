// Package view renders the storefront pages as templ components. Pages are
// wrapped in Layout through templ's children context, the same way a
// `@Layout(...) { ... }` call composes them.
package view

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/msomdec/freshshop/internal/domain"
)

// markup writes HTML to w and keeps the first error.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(s string) {
	if m.err == nil {
		_, m.err = io.WriteString(m.w, s)
	}
}

// text writes s escaped for element content or a quoted attribute value.
func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

// url writes a sanitized, escaped URL for an href or src attribute.
func (m *markup) url(s string) {
	m.text(string(templ.URL(s)))
}

func (m *markup) component(ctx context.Context, c templ.Component) {
	if m.err == nil {
		m.err = c.Render(ctx, m.w)
	}
}

// fragment turns a body writer into a component.
func fragment(body func(m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		body(m)
		return m.err
	})
}

// page renders content as the children of Layout.
func page(title string, user *domain.SessionUser, cartCount int, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Layout(title, user, cartCount).Render(templ.WithChildren(ctx, content), w)
	})
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// price formats a client-supplied price, falling back to its text.
func price(s domain.Scalar) string {
	if f, ok := s.Float(); ok {
		return money(f)
	}
	return s.String()
}

// CartTotal sums the numeric prices in the cart. Lines whose price is not a
// number contribute nothing.
func CartTotal(cart []domain.CartItem) float64 {
	var total float64
	for _, item := range cart {
		if f, ok := item.Price.Float(); ok {
			total += f
		}
	}
	return total
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
