package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/freshshop/internal/domain"
)

// SessionStore implements domain.SessionStore on the sessions table.
type SessionStore struct {
	db *sql.DB
}

func (s *SessionStore) Get(ctx context.Context, key string) (*domain.Session, error) {
	var (
		data      []byte
		expiresAt time.Time
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT data, expires_at FROM sessions WHERE session_key = $1 AND expires_at > now()", key,
	).Scan(&data, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return domain.DecodeSession(key, data, expiresAt)
}

func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	data, err := session.EncodeData()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_key, data, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (session_key) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`,
		session.Key, data, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Destroy(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE session_key = $1", key); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session whose expiry has passed.
func (s *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= now()")
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}
