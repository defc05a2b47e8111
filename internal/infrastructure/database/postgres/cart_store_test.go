package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/pkg/logging"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestCartSnapshotStoreExpiry(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("ttl sets expiry", func(t *testing.T) {
		store := NewCartSnapshotStore(nil, 48*time.Hour)
		store.now = func() time.Time { return fixed }

		at := store.expiry()
		require.NotNil(t, at)
		assert.Equal(t, fixed.Add(48*time.Hour), *at)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		store := NewCartSnapshotStore(nil, 0)

		assert.Nil(t, store.expiry())
	})
}

// testDB connects to DATABASE_URL and migrates the schema. The test is skipped
// when no database is configured.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	migration := NewMigration(db, logging.Discard())
	require.NoError(t, migration.RunAutoMigrations())
	require.NoError(t, migration.CreateIndexes())
	require.NoError(t, migration.GetTableInfo())
	return db
}

func countRows(t *testing.T, db *gorm.DB, key string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&cart.Snapshot{}).Where("cart_key = ?", key).Count(&n).Error)
	return n
}

func TestCartSnapshotStoreIntegration(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	store := NewCartSnapshotStore(db, time.Hour)

	t.Run("save upserts one row per key", func(t *testing.T) {
		key := "cart:test:" + uuid.NewString()
		t.Cleanup(func() { _ = store.Delete(ctx, key) })

		require.NoError(t, store.Save(ctx, key, []byte(`[{"product_id":"A","quantity":1}]`)))
		require.NoError(t, store.Save(ctx, key, []byte(`[{"product_id":"A","quantity":3}]`)))

		data, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"product_id":"A","quantity":3}]`, string(data))
		assert.Equal(t, int64(1), countRows(t, db, key))

		require.NoError(t, store.Delete(ctx, key))
		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, cart.ErrSnapshotNotFound)
	})

	t.Run("expired rows read as missing and are purged", func(t *testing.T) {
		key := "cart:test:" + uuid.NewString()
		t.Cleanup(func() { _ = store.Delete(ctx, key) })

		stale := NewCartSnapshotStore(db, time.Hour)
		stale.now = func() time.Time { return time.Now().UTC().Add(-2 * time.Hour) }
		require.NoError(t, stale.Save(ctx, key, []byte(`[]`)))
		require.Equal(t, int64(1), countRows(t, db, key))

		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, cart.ErrSnapshotNotFound)

		purged, err := store.PurgeExpired(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, purged, int64(1))
		assert.Zero(t, countRows(t, db, key))
	})

	t.Run("zero ttl rows survive purge", func(t *testing.T) {
		key := "cart:test:" + uuid.NewString()
		forever := NewCartSnapshotStore(db, 0)
		t.Cleanup(func() { _ = forever.Delete(ctx, key) })

		require.NoError(t, forever.Save(ctx, key, []byte(`[]`)))
		_, err := forever.PurgeExpired(ctx)
		require.NoError(t, err)

		data, err := forever.Load(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})
}
