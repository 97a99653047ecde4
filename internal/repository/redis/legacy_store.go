package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/maxviazov/productivity-hub/internal/repository"
	"github.com/redis/go-redis/v9"
)

// LegacyStore reads and removes legacy session blobs stored as plain string keys.
type LegacyStore struct {
	client redis.UniversalClient
	prefix string
}

// NewLegacyStore creates a store reading keys exactly as the old client wrote them.
func NewLegacyStore(client redis.UniversalClient) *LegacyStore {
	return &LegacyStore{client: client}
}

// NewLegacyStoreWithPrefix namespaces every key with prefix.
func NewLegacyStoreWithPrefix(client redis.UniversalClient, prefix string) *LegacyStore {
	return &LegacyStore{client: client, prefix: prefix}
}

func (s *LegacyStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, true, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *LegacyStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

func (s *LegacyStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var (
	_ repository.LegacyStore = (*LegacyStore)(nil)
	_ repository.Pinger      = (*LegacyStore)(nil)
)
