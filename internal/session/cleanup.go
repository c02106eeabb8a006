package session

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper is implemented by stores that keep expired sessions around until
// they are deleted explicitly. Redis expires keys on its own.
type Sweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// StartCleanup periodically removes expired sessions from the manager's
// store until ctx is cancelled. It does nothing if the store is not a Sweeper.
func (m *Manager) StartCleanup(ctx context.Context, interval time.Duration) {
	sweeper, ok := m.store.(Sweeper)
	if !ok || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := sweeper.DeleteExpired(ctx)
				if err != nil {
					slog.Error("delete expired sessions", "error", err)
					continue
				}
				if n > 0 {
					slog.Info("expired sessions removed", "count", n)
				}
			}
		}
	}()
}
