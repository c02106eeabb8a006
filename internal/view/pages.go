package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/msomdec/freshshop/internal/domain"
)

// HomePage renders the landing page.
func HomePage(user *domain.SessionUser, cartCount int) templ.Component {
	return page("Home", user, cartCount, fragment(func(m *markup) {
		m.raw(`<section class="hero"><h1>Fresh food, delivered</h1>`)
		if user != nil {
			m.raw(`<p>Welcome back, `)
			m.text(user.Name)
			m.raw(`.</p>`)
		}
		m.raw(`<a class="btn" href="/shop">Shop now</a></section>`)
	}))
}

// staticPages lists the pages whose only context is the visitor.
var staticPages = map[string]bool{
	"shop-detail": true,
	"wishlist":    true,
	"about":       true,
	"checkout":    true,
	"gallery":     true,
}

// StaticPage renders a page whose only context is the visitor.
func StaticPage(name, title string, user *domain.SessionUser, cartCount int) templ.Component {
	if !staticPages[name] {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return fmt.Errorf("unknown page %q", name)
		})
	}
	return page(title, user, cartCount, fragment(func(m *markup) {
		m.raw(`<section class="`)
		m.text(name)
		m.raw(`"><h1>`)
		m.text(title)
		m.raw(`</h1>`)
		if user != nil {
			m.raw(`<p>Signed in as `)
			m.text(user.Email)
			m.raw(`</p>`)
		}
		m.raw(`</section>`)
	}))
}

func ContactPage(user *domain.SessionUser, cartCount int) templ.Component {
	var name, email string
	if user != nil {
		name, email = user.Name, user.Email
	}
	return page("Contact Us", user, cartCount, fragment(func(m *markup) {
		m.raw(`<h1>Contact Us</h1><form method="post" action="/contact" class="contact-form">`)
		m.raw(`<label>Name <input type="text" name="name" value="`)
		m.text(name)
		m.raw(`" required></label><label>Email <input type="email" name="email" value="`)
		m.text(email)
		m.raw(`" required></label>`)
		m.raw(`<label>Subject <input type="text" name="subject" required></label>`)
		m.raw(`<label>Message <textarea name="message" rows="5" required></textarea></label>`)
		m.raw(`<button type="submit" class="btn">Send Message</button></form>`)
	}))
}

func AccountPage(user *domain.SessionUser, cartCount int) templ.Component {
	return page("My Account", user, cartCount, fragment(func(m *markup) {
		m.raw(`<h1>My Account</h1><dl class="account"><dt>Name</dt><dd>`)
		m.text(user.Name)
		m.raw(`</dd><dt>Email</dt><dd>`)
		m.text(user.Email)
		m.raw(`</dd></dl><p><a href="/cart">View cart</a> &middot; <a href="/logout">Log Out</a></p>`)
	}))
}
