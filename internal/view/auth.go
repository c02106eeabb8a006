package view

import (
	"github.com/a-h/templ"
)

func formError(m *markup, message string) {
	if message == "" {
		return
	}
	m.raw(`<p class="alert alert-danger" role="alert">`)
	m.text(message)
	m.raw(`</p>`)
}

// RegisterPage renders the registration form. name and email are echoed back
// after a failed attempt; the password never is.
func RegisterPage(name, email, errorMessage string) templ.Component {
	return page("Register", nil, 0, fragment(func(m *markup) {
		m.raw(`<h1>Create an Account</h1>`)
		formError(m, errorMessage)
		m.raw(`<form method="post" action="/register" class="auth-form">`)
		m.raw(`<label>Name <input type="text" name="name" value="`)
		m.text(name)
		m.raw(`"></label><label>Email <input type="email" name="email" value="`)
		m.text(email)
		m.raw(`" required></label>`)
		m.raw(`<label>Password <input type="password" name="password" required></label>`)
		m.raw(`<button type="submit" class="btn">Register</button></form>`)
		m.raw(`<p>Already have an account? <a href="/login">Log In</a></p>`)
	}))
}

func LoginPage(email, errorMessage string) templ.Component {
	return page("Log In", nil, 0, fragment(func(m *markup) {
		m.raw(`<h1>Log In</h1>`)
		formError(m, errorMessage)
		m.raw(`<form method="post" action="/login" class="auth-form">`)
		m.raw(`<label>Email <input type="email" name="email" value="`)
		m.text(email)
		m.raw(`" required></label>`)
		m.raw(`<label>Password <input type="password" name="password" required></label>`)
		m.raw(`<button type="submit" class="btn">Log In</button></form>`)
		m.raw(`<p>New here? <a href="/register">Create an account</a></p>`)
	}))
}
