// internal/infrastructure/database/postgres/cart_store.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront/internal/domain/cart"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartSnapshotStore keeps cart snapshots in the cart_snapshots table
type CartSnapshotStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewCartSnapshotStore creates a snapshot store on db. Rows idle for longer
// than ttl are treated as missing; a ttl of zero keeps them forever.
func NewCartSnapshotStore(db *gorm.DB, ttl time.Duration) *CartSnapshotStore {
	return &CartSnapshotStore{
		db:  db,
		ttl: ttl,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Load returns the snapshot stored under key
func (s *CartSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	var row cart.Snapshot
	err := s.db.WithContext(ctx).
		Where("cart_key = ?", key).
		Where("expires_at IS NULL OR expires_at > ?", s.now()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, cart.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}
	return []byte(row.Items), nil
}

// Save upserts the snapshot for key and pushes its expiry forward
func (s *CartSnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	row := cart.Snapshot{
		Key:       key,
		Items:     string(data),
		ExpiresAt: s.expiry(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "expires_at", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot for key
func (s *CartSnapshotStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("cart_key = ?", key).Delete(&cart.Snapshot{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired snapshots and returns how many were removed
func (s *CartSnapshotStore) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", s.now()).
		Delete(&cart.Snapshot{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge cart snapshots: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *CartSnapshotStore) expiry() *time.Time {
	if s.ttl <= 0 {
		return nil
	}
	at := s.now().Add(s.ttl)
	return &at
}
