package session

import (
	"context"
	"sync"
	"time"

	"github.com/msomdec/freshshop/internal/domain"
)

// MemoryStore keeps sessions in process memory. Sessions are stored encoded
// so callers never share slices with the store.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*domain.Session, error) {
	s.mu.Lock()
	entry, ok := s.sessions[key]
	if ok && !entry.expiresAt.After(time.Now()) {
		delete(s.sessions, key)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, domain.ErrNotFound
	}
	return domain.DecodeSession(key, entry.data, entry.expiresAt)
}

func (s *MemoryStore) Save(ctx context.Context, sess *domain.Session) error {
	data, err := sess.EncodeData()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Key] = memoryEntry{data: data, expiresAt: sess.ExpiresAt}
	return nil
}

func (s *MemoryStore) Destroy(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

func (s *MemoryStore) DeleteExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var n int64
	for key, entry := range s.sessions {
		if !entry.expiresAt.After(now) {
			delete(s.sessions, key)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
