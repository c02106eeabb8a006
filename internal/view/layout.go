package view

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/msomdec/freshshop/internal/domain"
)

// Layout is the shared page chrome. The page body comes from the children
// in ctx.
func Layout(title string, user *domain.SessionUser, cartCount int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		m.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		m.text(title)
		m.raw(` | Freshshop</title><link rel="stylesheet" href="/static/css/style.css">`)
		m.raw(`<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"></script></head><body>`)

		m.raw(`<header class="main-header"><nav class="navbar"><a class="brand" href="/">Freshshop</a><ul class="nav-links">`)
		m.raw(`<li><a href="/">Home</a></li><li><a href="/about">About Us</a></li><li><a href="/shop">Shop</a></li>`)
		m.raw(`<li><a href="/gallery">Gallery</a></li><li><a href="/contact-us">Contact Us</a></li></ul><ul class="nav-account">`)
		if user != nil {
			m.raw(`<li><a href="/my-account">`)
			m.text(user.Name)
			m.raw(`</a></li><li><a href="/logout">Log Out</a></li>`)
		} else {
			m.raw(`<li><a href="/login">Log In</a></li><li><a href="/register">Register</a></li>`)
		}
		m.raw(`<li class="cart-link" data-init="@get('/cart/badge')"><a href="/cart">Cart `)
		m.component(ctx, CartBadge(cartCount))
		m.raw(`</a></li></ul></nav></header>`)

		m.raw(`<main class="container">`)
		m.component(ctx, templ.GetChildren(ctx))
		m.raw(`</main><footer class="footer"><p>&copy; Freshshop</p></footer></body></html>`)
		return m.err
	})
}

// CartBadge is the cart counter in the navbar. It is also the fragment
// patched into #cart-count.
func CartBadge(count int) templ.Component {
	return fragment(func(m *markup) {
		m.raw(`<span id="cart-count" class="badge">`)
		m.text(strconv.Itoa(count))
		m.raw(`</span>`)
	})
}
