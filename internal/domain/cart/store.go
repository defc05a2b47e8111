// internal/domain/cart/store.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
)

// Store holds one cart and applies actions to it. When a SnapshotStore is
// attached every change to the items is written through under the store key.
type Store struct {
	mu        sync.Mutex
	state     State
	key       string
	snapshots SnapshotStore
	notifier  Notifier
	logger    logrus.FieldLogger
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithSnapshots persists the cart under key in snapshots
func WithSnapshots(snapshots SnapshotStore, key string) StoreOption {
	return func(s *Store) {
		s.snapshots = snapshots
		s.key = key
	}
}

// WithNotifier sets the notifier that receives action messages
func WithNotifier(n Notifier) StoreOption {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the logger used for recoverable problems
func WithLogger(logger logrus.FieldLogger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates an empty cart
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		state:    NewState(nil),
		notifier: NopNotifier,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads the persisted snapshot, if any. A missing key leaves the cart
// as it is; so does an unparseable payload, which is logged and otherwise
// ignored. Only a failing snapshot backend is reported as an error.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	data, err := s.snapshots.Load(ctx, s.key)
	if errors.Is(err, ErrSnapshotNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	items, err := DecodeSnapshot(data)
	if err != nil {
		s.logger.WithError(err).WithField("key", s.key).Warn("Ignoring malformed cart snapshot")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state, _ = Reduce(s.state, LoadCart{Items: items})
	return nil
}

// Dispatch applies action. If the items changed they are persisted before the
// notification is emitted. When persisting fails the cart keeps its previous
// state and no notification is sent.
func (s *Store) Dispatch(ctx context.Context, action Action) (State, error) {
	next, note, err := s.apply(ctx, action)
	if err != nil {
		return cloneState(next), err
	}

	if note != nil {
		s.notifier.Notify(*note)
	}

	return cloneState(next), nil
}

// apply reduces and persists under the lock so writes land in dispatch order
func (s *Store) apply(ctx context.Context, action Action) (State, *Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next, note := Reduce(prev, action)

	if s.snapshots != nil && !slices.Equal(prev.Items, next.Items) {
		data, err := EncodeSnapshot(next.Items)
		if err != nil {
			return prev, nil, err
		}
		if err := s.snapshots.Save(ctx, s.key, data); err != nil {
			return prev, nil, fmt.Errorf("failed to save cart: %w", err)
		}
	}

	s.state = next
	return next, note, nil
}

// State returns a copy of the current cart
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

func cloneState(state State) State {
	items := make([]LineItem, len(state.Items))
	copy(items, state.Items)
	state.Items = items
	return state
}

// Add adds quantity of product
func (s *Store) Add(ctx context.Context, product Product, quantity int) (State, error) {
	return s.Dispatch(ctx, AddItem{Product: product, Quantity: quantity})
}

// Remove deletes the line for productID
func (s *Store) Remove(ctx context.Context, productID string) (State, error) {
	return s.Dispatch(ctx, RemoveItem{ProductID: productID})
}

// UpdateQuantity sets the quantity for productID
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) (State, error) {
	return s.Dispatch(ctx, UpdateQuantity{ProductID: productID, Quantity: quantity})
}

// Clear empties the cart
func (s *Store) Clear(ctx context.Context) (State, error) {
	return s.Dispatch(ctx, ClearCart{})
}

// Load replaces the cart contents with items
func (s *Store) Load(ctx context.Context, items []LineItem) (State, error) {
	return s.Dispatch(ctx, LoadCart{Items: items})
}
