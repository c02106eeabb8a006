package handler

import (
	"context"
	"net"
	"net/http"

	"github.com/msomdec/freshshop/internal/domain"
	"github.com/msomdec/freshshop/internal/session"
)

// UserFromContext returns the logged-in visitor of the current session.
// Returns nil for anonymous visitors or when no session is attached.
func UserFromContext(ctx context.Context) *domain.SessionUser {
	sess := session.FromContext(ctx)
	if sess == nil {
		return nil
	}
	return sess.User
}

// cartCount returns the number of items in the current session's cart.
func cartCount(ctx context.Context) int {
	sess := session.FromContext(ctx)
	if sess == nil {
		return 0
	}
	return len(sess.Cart)
}

// RequireUser redirects anonymous visitors to the login page. It must run
// inside the session middleware.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets conservative response headers on every request.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the host part of the request's remote address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
