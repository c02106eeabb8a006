// Package session keeps per-visitor state on the server and ties it to the
// browser with a signed cookie. The cookie only carries the opaque session
// key; the user and cart live in a domain.SessionStore.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/freshshop/internal/domain"
)

const DefaultCookieName = "freshshop_session"

// Config configures a Manager.
type Config struct {
	Store      domain.SessionStore
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

// Manager loads sessions for incoming requests and writes them back.
type Manager struct {
	store      domain.SessionStore
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
}

// NewManager creates a Manager. TTL defaults to 24 hours.
func NewManager(cfg Config) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	return &Manager{
		store:      cfg.Store,
		secret:     []byte(cfg.Secret),
		ttl:        cfg.TTL,
		cookieName: cfg.CookieName,
		secure:     cfg.Secure,
	}
}

type contextKey struct{}

type requestState struct {
	session   *domain.Session
	original  []byte
	fresh     bool
	destroyed bool
}

// FromContext returns the session attached by Middleware, or nil.
func FromContext(ctx context.Context) *domain.Session {
	state, _ := ctx.Value(contextKey{}).(*requestState)
	if state == nil {
		return nil
	}
	return state.session
}

// Middleware attaches the visitor's session to the request context,
// creating one when the cookie is missing, invalid, or expired. The cart is
// always initialised. After the handler returns, the session is saved if it
// is new or was modified.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, err := m.load(r)
		if err != nil {
			slog.Error("load session", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if state.fresh {
			m.setCookie(w, state.session)
		}

		ctx := context.WithValue(r.Context(), contextKey{}, state)
		next.ServeHTTP(w, r.WithContext(ctx))

		if state.destroyed {
			return
		}
		if err := m.persist(context.WithoutCancel(r.Context()), state); err != nil {
			slog.Error("save session", "key", state.session.Key, "error", err)
		}
	})
}

// Regenerate moves the current session to a new key and reissues the cookie.
// Call it when the privilege level changes, such as on login.
func (m *Manager) Regenerate(w http.ResponseWriter, r *http.Request) error {
	state, _ := r.Context().Value(contextKey{}).(*requestState)
	if state == nil {
		return fmt.Errorf("%w: no session in context", domain.ErrSession)
	}

	oldKey := state.session.Key
	state.session.Key = newKey()
	state.session.ExpiresAt = time.Now().Add(m.ttl)
	state.fresh = true

	if !state.isNewInStore() {
		if err := m.store.Destroy(r.Context(), oldKey); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrSession, err)
		}
	}

	m.setCookie(w, state.session)
	return nil
}

// Destroy deletes the session from the store and expires the cookie. The
// request continues with an empty anonymous session that is not saved.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	state, _ := r.Context().Value(contextKey{}).(*requestState)
	if state == nil {
		return fmt.Errorf("%w: no session in context", domain.ErrSession)
	}

	if err := m.store.Destroy(r.Context(), state.session.Key); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSession, err)
	}

	state.destroyed = true
	state.session = &domain.Session{Cart: []domain.CartItem{}}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return nil
}

func (m *Manager) load(r *http.Request) (*requestState, error) {
	if cookie, err := r.Cookie(m.cookieName); err == nil {
		if key, err := m.parseToken(cookie.Value); err == nil {
			sess, err := m.store.Get(r.Context(), key)
			switch {
			case err == nil:
				if sess.Cart == nil {
					sess.Cart = []domain.CartItem{}
				}
				original, err := sess.EncodeData()
				if err != nil {
					return nil, err
				}
				return &requestState{session: sess, original: original}, nil
			case !errors.Is(err, domain.ErrNotFound):
				return nil, err
			}
		}
	}

	return &requestState{
		session: &domain.Session{
			Key:       newKey(),
			Cart:      []domain.CartItem{},
			ExpiresAt: time.Now().Add(m.ttl),
		},
		fresh: true,
	}, nil
}

func (m *Manager) persist(ctx context.Context, state *requestState) error {
	data, err := state.session.EncodeData()
	if err != nil {
		return err
	}
	if !state.fresh && bytes.Equal(data, state.original) {
		return nil
	}
	return m.store.Save(ctx, state.session)
}

// isNewInStore reports whether the session has never been saved.
func (s *requestState) isNewInStore() bool {
	return s.original == nil
}

func (m *Manager) setCookie(w http.ResponseWriter, sess *domain.Session) {
	token, err := m.signToken(sess)
	if err != nil {
		slog.Error("sign session cookie", "error", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
	})
}

func (m *Manager) signToken(sess *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sess.Key,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parseToken(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("session cookie has no subject")
	}
	return claims.Subject, nil
}

func newKey() string {
	return uuid.NewString()
}
