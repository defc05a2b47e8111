// internal/domain/cart/snapshot.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrSnapshotNotFound is returned by a SnapshotStore when the key is absent
var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// SnapshotStore is the persistent key-value store that holds serialized carts
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// EncodeSnapshot serializes the full item collection as a JSON array
func EncodeSnapshot(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot written by EncodeSnapshot or by the
// browser storefront
func DecodeSnapshot(data []byte) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	return items, nil
}

// MemorySnapshotStore keeps snapshots in process memory
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemorySnapshotStore creates an empty in-memory store
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{data: make(map[string][]byte)}
}

// Load returns a copy of the bytes stored under key
func (m *MemorySnapshotStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of data under key
func (m *MemorySnapshotStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (m *MemorySnapshotStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
