package main

import (
	"context"
	"fmt"
	"time"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront/internal/infrastructure/database/redis"
)

// backends holds the connections opened for the configured cart store
type backends struct {
	snapshots cart.SnapshotStore
	redis     *redis.Client
	database  *postgres.Database
	purger    *postgres.CartSnapshotStore
}

func (b *backends) Close() {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close Redis")
		}
	}
	if b.database != nil {
		if err := b.database.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close database")
		}
	}
}

var openBackends = connectBackends

// connectBackends connects whatever CART_STORE needs. Redis is also opened for
// rate limiting when REDIS_HOST is set, whichever store is selected. Outside
// production an unreachable store falls back to memory.
func connectBackends(ctx context.Context) (*backends, error) {
	b := &backends{}

	var redisErr error
	if cfg.Redis.Host != "" || cfg.Cart.Store == config.CartStoreRedis {
		client, err := redis.NewConnection(cfg, logger)
		if err != nil {
			redisErr = err
			logger.WithError(err).Warn("Redis unavailable, rate limiting disabled")
		} else {
			b.redis = client
		}
	}

	var storeErr error
	switch cfg.Cart.Store {
	case config.CartStoreRedis:
		if b.redis != nil {
			b.snapshots = redis.NewCartSnapshotStore(b.redis.GetClient(), cfg.Cart.TTL)
		} else {
			storeErr = redisErr
		}
	case config.CartStorePostgres:
		storeErr = b.openPostgres(ctx)
	}

	if storeErr != nil {
		if cfg.IsProduction() {
			b.Close()
			return nil, storeErr
		}
		logger.WithError(storeErr).WithField("store", cfg.Cart.Store).Warn("Cart store unavailable, falling back to memory")
	}

	if b.snapshots == nil {
		logger.Warn("Using in-memory cart store; carts are lost on restart")
		b.snapshots = cart.NewMemorySnapshotStore()
	}

	return b, nil
}

func (b *backends) openPostgres(ctx context.Context) error {
	db, err := postgres.NewConnection(cfg, logger)
	if err != nil {
		return err
	}

	migration := postgres.NewMigration(db.GetDB(), logger)
	if err := migration.RunAutoMigrations(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("Failed to close database")
		}
		return fmt.Errorf("database migration failed: %w", err)
	}
	if err := migration.CreateIndexes(); err != nil {
		logger.WithError(err).Warn("Index creation failed")
	}
	if cfg.IsDevelopment() {
		if err := migration.GetTableInfo(); err != nil {
			logger.WithError(err).Warn("Failed to list database tables")
		}
	}

	store := postgres.NewCartSnapshotStore(db.GetDB(), cfg.Cart.TTL)
	if purged, err := store.PurgeExpired(ctx); err != nil {
		logger.WithError(err).Warn("Failed to purge expired carts")
	} else if purged > 0 {
		logger.WithField("count", purged).Info("Purged expired carts")
	}

	b.database = db
	b.snapshots = store
	b.purger = store
	return nil
}

const purgeInterval = time.Hour

// purgeExpired removes expired Postgres carts until ctx is done. Redis
// expires keys on its own.
func (b *backends) purgeExpired(ctx context.Context) {
	if b.purger == nil {
		return
	}

	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := b.purger.PurgeExpired(ctx)
			if err != nil {
				logger.WithError(err).Warn("Failed to purge expired carts")
				continue
			}
			if purged > 0 {
				logger.WithField("count", purged).Info("Purged expired carts")
			}
		}
	}
}
