package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/event-registration/internal/form"
	"github.com/spec-kit/event-registration/internal/persistence"
)

// RedisStore keeps sessions in Redis with a sliding expiry.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisStore builds a store over an existing connection.
func NewRedisStore(conn *persistence.Redis, prefix string, ttl time.Duration) (*RedisStore, error) {
	if conn == nil || conn.Client == nil {
		return nil, persistence.ErrRedisNotConfigured
	}
	return &RedisStore{client: conn.Client, prefix: prefix, ttl: ttl}, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Load(ctx context.Context, id string) (form.Snapshot, error) {
	raw, err := s.client.GetEx(ctx, s.key(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return form.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return form.Snapshot{}, fmt.Errorf("load session %s: %w", id, err)
	}
	return decode(raw)
}

func (s *RedisStore) Save(ctx context.Context, id string, snap form.Snapshot) error {
	raw, err := encode(snap)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(id), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
