package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/freshshop/internal/domain"
	"github.com/msomdec/freshshop/internal/metrics"
	"github.com/msomdec/freshshop/internal/service"
	"github.com/msomdec/freshshop/internal/session"
	"github.com/msomdec/freshshop/internal/view"
)

// AuthHandler handles registration, login and logout form requests.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	limiter  *service.RateLimiter
}

// NewAuthHandler creates a new AuthHandler. limiter may be nil to disable
// login throttling.
func NewAuthHandler(auth *service.AuthService, sessions *session.Manager, limiter *service.RateLimiter) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, limiter: limiter}
}

// HandleRegisterPage renders the registration form.
// GET /register
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.RegisterPage("", "", ""))
}

// HandleRegister creates an account and redirects to the login page.
// POST /register
// Form or JSON: name, email, password
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readRequest(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	name, email := req.Name, req.Email

	_, err := h.auth.Register(r.Context(), name, email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			metrics.RecordAuthAttempt("register", "duplicate")
			render(w, r, http.StatusUnprocessableEntity, view.RegisterPage(name, email, "That email address is already registered."))
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.RecordAuthAttempt("register", "invalid")
			render(w, r, http.StatusUnprocessableEntity, view.RegisterPage(name, email, "Email and password are required."))
		default:
			metrics.RecordAuthAttempt("register", "error")
			slog.Error("register user", "error", err)
			render(w, r, http.StatusInternalServerError, view.RegisterPage(name, email, "There was an error registering the user."))
		}
		return
	}

	metrics.RecordAuthAttempt("register", "ok")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLoginPage renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.LoginPage("", ""))
}

// HandleLogin checks the credentials, stores the user in a regenerated
// session and redirects home.
// POST /login
// Form or JSON: email, password
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readRequest(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	email := req.Email

	if h.limiter != nil && !h.limiter.Allow(clientIP(r)) {
		metrics.RecordAuthAttempt("login", "throttled")
		render(w, r, http.StatusTooManyRequests, view.LoginPage(email, "Too many login attempts. Please try again later."))
		return
	}

	user, err := h.auth.Login(r.Context(), email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.RecordAuthAttempt("login", "unknown_user")
			render(w, r, http.StatusUnauthorized, view.LoginPage(email, "User not found."))
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.RecordAuthAttempt("login", "bad_password")
			render(w, r, http.StatusUnauthorized, view.LoginPage(email, "Incorrect password."))
		default:
			metrics.RecordAuthAttempt("login", "error")
			slog.Error("login user", "error", err)
			render(w, r, http.StatusInternalServerError, view.LoginPage(email, "Server error. Please try again later."))
		}
		return
	}

	if err := h.sessions.Regenerate(w, r); err != nil {
		slog.Error("regenerate session", "error", err)
		render(w, r, http.StatusInternalServerError, view.LoginPage(email, "Server error. Please try again later."))
		return
	}
	session.FromContext(r.Context()).User = service.SessionIdentity(user)

	metrics.RecordAuthAttempt("login", "ok")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout destroys the session and redirects home.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		slog.Error("destroy session", "error", err)
		http.Error(w, "Error logging out.", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleMyAccount renders the account page. Must be wrapped in RequireUser.
// GET /my-account
func (h *AuthHandler) HandleMyAccount(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.AccountPage(UserFromContext(r.Context()), cartCount(r.Context())))
}
