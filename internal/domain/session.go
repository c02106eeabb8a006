package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SessionUser is the identity stored in a session after login.
// The password hash never leaves the users table.
type SessionUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the server-side state referenced by the session cookie.
type Session struct {
	Key       string
	User      *SessionUser
	Cart      []CartItem
	ExpiresAt time.Time
}

type sessionPayload struct {
	User *SessionUser `json:"user,omitempty"`
	Cart []CartItem   `json:"cart"`
}

// Authenticated reports whether a user is logged in on this session.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil
}

// EncodeData serializes the user and cart for storage.
func (s *Session) EncodeData() ([]byte, error) {
	data, err := json.Marshal(sessionPayload{User: s.User, Cart: s.Cart})
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// DecodeSession rebuilds a session from stored data.
func DecodeSession(key string, data []byte, expiresAt time.Time) (*Session, error) {
	var p sessionPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if p.Cart == nil {
		p.Cart = []CartItem{}
	}
	return &Session{Key: key, User: p.User, Cart: p.Cart, ExpiresAt: expiresAt}, nil
}

// SessionStore persists sessions by key. Get returns ErrNotFound for
// missing or expired sessions. Destroy of an unknown key is not an error.
type SessionStore interface {
	Get(ctx context.Context, key string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Destroy(ctx context.Context, key string) error
}
