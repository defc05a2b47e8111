// internal/infrastructure/database/redis/cart_store.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront/internal/domain/cart"
)

// CartSnapshotStore keeps cart snapshots as Redis strings that expire
// after ttl of inactivity
type CartSnapshotStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewCartSnapshotStore creates a snapshot store on rdb. A ttl of zero keeps
// keys forever.
func NewCartSnapshotStore(rdb redis.Cmdable, ttl time.Duration) *CartSnapshotStore {
	return &CartSnapshotStore{rdb: rdb, ttl: ttl}
}

// Load returns the snapshot stored under key
func (s *CartSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Save writes data under key and refreshes its expiry
func (s *CartSnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *CartSnapshotStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
