package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/msomdec/freshshop/internal/domain"
)

const redisKeyPrefix = "freshshop:session:"

// RedisStore keeps sessions in Redis so several server processes can share
// them. Keys expire through Redis TTLs.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

type redisRecord struct {
	ExpiresAt time.Time       `json:"expires_at"`
	Data      json.RawMessage `json:"data"`
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, prefix: redisKeyPrefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var rec redisRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode redis session: %w", err)
	}
	if !rec.ExpiresAt.After(time.Now()) {
		return nil, domain.ErrNotFound
	}
	return domain.DecodeSession(key, rec.Data, rec.ExpiresAt)
}

func (s *RedisStore) Save(ctx context.Context, sess *domain.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.Destroy(ctx, sess.Key)
	}

	data, err := sess.EncodeData()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(redisRecord{ExpiresAt: sess.ExpiresAt, Data: data})
	if err != nil {
		return fmt.Errorf("encode redis session: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+sess.Key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Destroy(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis destroy session: %w", err)
	}
	return nil
}
