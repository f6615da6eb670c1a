package snapshot

import (
	"context"
	"errors"

	"agencyhunter_backend/internal/leads/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStore holds the snapshot document in a single Redis key. This is the
// primary backend: one named slot, read once at startup, overwritten
// wholesale on every mutation.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisStore creates a Redis-backed snapshot store for the given namespace key.
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{client: client, namespace: namespace}
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context) ([]domain.SavedLead, error) {
	data, err := s.client.Get(ctx, s.namespace).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, leads []domain.SavedLead) error {
	data, err := Encode(leads)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.namespace, data, 0).Err()
}

var _ Store = (*RedisStore)(nil)
