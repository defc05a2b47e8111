package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/cart"
)

// fakeRedis implements the handful of commands the snapshot store uses
type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestCartSnapshotStore(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	store := NewCartSnapshotStore(rdb, time.Hour)

	_, err := store.Load(ctx, "cart:session:x")
	assert.ErrorIs(t, err, cart.ErrSnapshotNotFound)

	require.NoError(t, store.Save(ctx, "cart:session:x", []byte(`[]`)))
	assert.Equal(t, time.Hour, rdb.ttls["cart:session:x"])

	data, err := store.Load(ctx, "cart:session:x")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	require.NoError(t, store.Delete(ctx, "cart:session:x"))
	_, err = store.Load(ctx, "cart:session:x")
	assert.ErrorIs(t, err, cart.ErrSnapshotNotFound)
}

func TestCartSnapshotStoreBacksCartStore(t *testing.T) {
	ctx := context.Background()
	snapshots := NewCartSnapshotStore(newFakeRedis(), 0)

	store := cart.NewStore(cart.WithSnapshots(snapshots, "k"))
	_, err := store.Add(ctx, cart.Product{ProductID: "P1", Price: 500, PV: 10}, 2)
	require.NoError(t, err)

	restored := cart.NewStore(cart.WithSnapshots(snapshots, "k"))
	require.NoError(t, restored.Hydrate(ctx))

	state := restored.State()
	assert.Equal(t, 1000.0, state.TotalAmount)
	assert.Equal(t, 20.0, state.TotalPV)
}
