// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
)

// Cart service errors
var (
	ErrNoOwner           = errors.New("session ID or user ID required for cart")
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
)

const lockStripes = 64

// Owner identifies whose cart is being used. A member cart (UserID set)
// wins over the guest session cart.
type Owner struct {
	UserID    string
	SessionID string
}

// Guest returns the owner for a guest session
func Guest(sessionID string) Owner {
	return Owner{SessionID: sessionID}
}

// Member returns the owner for a signed-in user
func Member(userID string) Owner {
	return Owner{UserID: userID}
}

// Service keeps one cart per owner in a SnapshotStore. Each call hydrates
// the cart, applies one action and writes it back; calls for the same owner
// are serialized.
type Service struct {
	snapshots SnapshotStore
	prefix    string
	logger    logrus.FieldLogger
	locks     [lockStripes]sync.Mutex
}

// NewService creates a new cart service
func NewService(snapshots SnapshotStore, cfg *config.Config, logger logrus.FieldLogger) *Service {
	return &Service{
		snapshots: snapshots,
		prefix:    cfg.Cart.KeyPrefix,
		logger:    logger,
	}
}

// Key returns the snapshot key for owner
func (s *Service) Key(owner Owner) (string, error) {
	switch {
	case owner.UserID != "":
		return fmt.Sprintf("%suser:%s", s.prefix, owner.UserID), nil
	case owner.SessionID != "":
		return fmt.Sprintf("%ssession:%s", s.prefix, owner.SessionID), nil
	default:
		return "", ErrNoOwner
	}
}

// GetCart returns the stored cart for owner; an owner with no cart gets an
// empty one
func (s *Service) GetCart(ctx context.Context, owner Owner) (State, error) {
	key, err := s.Key(owner)
	if err != nil {
		return State{}, err
	}

	store, err := s.open(ctx, key, NopNotifier)
	if err != nil {
		return State{}, err
	}
	return store.State(), nil
}

// Apply dispatches action against owner's cart. notifier receives the
// message for the action; it may be nil.
func (s *Service) Apply(ctx context.Context, owner Owner, action Action, notifier Notifier) (State, error) {
	return s.applyChecked(ctx, owner, action, notifier, nil)
}

// applyChecked runs check against the current cart under the owner's lock and
// dispatches action only when it passes
func (s *Service) applyChecked(ctx context.Context, owner Owner, action Action, notifier Notifier, check func(State) error) (State, error) {
	key, err := s.Key(owner)
	if err != nil {
		return State{}, err
	}

	unlock := s.lock(key)
	defer unlock()

	store, err := s.open(ctx, key, notifier)
	if err != nil {
		return State{}, err
	}

	if check != nil {
		if err := check(store.State()); err != nil {
			return store.State(), err
		}
	}

	return store.Dispatch(ctx, action)
}

// AddItem adds quantity of product to owner's cart
func (s *Service) AddItem(ctx context.Context, owner Owner, product Product, quantity int, notifier Notifier) (State, error) {
	return s.Apply(ctx, owner, AddItem{Product: product, Quantity: quantity}, notifier)
}

// AddItemWithinStock adds quantity of product unless the line would then hold
// more than stock. A stock of zero or less means the count is unknown and
// is not enforced.
func (s *Service) AddItemWithinStock(ctx context.Context, owner Owner, product Product, quantity, stock int, notifier Notifier) (State, error) {
	action := AddItem{Product: product, Quantity: quantity}
	return s.applyChecked(ctx, owner, action, notifier, func(current State) error {
		if stock <= 0 {
			return nil
		}
		requested := quantity
		if requested <= 0 {
			requested = 1
		}
		existing, _ := current.Find(product.ProductID)
		if existing.Quantity+requested > stock {
			return fmt.Errorf("%w: %d in cart, %d requested, %d available",
				ErrInsufficientStock, existing.Quantity, requested, stock)
		}
		return nil
	})
}

// UpdateQuantityWithinStock sets the quantity of productID unless it exceeds
// stock. As with AddItemWithinStock a non-positive stock is not enforced.
func (s *Service) UpdateQuantityWithinStock(ctx context.Context, owner Owner, productID string, quantity, stock int, notifier Notifier) (State, error) {
	action := UpdateQuantity{ProductID: productID, Quantity: quantity}
	return s.applyChecked(ctx, owner, action, notifier, func(State) error {
		if stock > 0 && quantity > stock {
			return fmt.Errorf("%w: %d requested, %d available", ErrInsufficientStock, quantity, stock)
		}
		return nil
	})
}

// RemoveOrdered takes the ordered quantities out of owner's cart. Lines added
// or topped up after the order was built stay in the cart. An emptied cart
// reports "Cart cleared".
func (s *Service) RemoveOrdered(ctx context.Context, owner Owner, ordered []LineItem, notifier Notifier) (State, error) {
	key, err := s.Key(owner)
	if err != nil {
		return State{}, err
	}

	unlock := s.lock(key)
	defer unlock()

	store, err := s.open(ctx, key, notifier)
	if err != nil {
		return State{}, err
	}

	placed := make(map[string]int, len(ordered))
	for _, item := range ordered {
		placed[item.ProductID] += item.Quantity
	}

	var remaining []LineItem
	for _, item := range store.State().Items {
		item.Quantity -= placed[item.ProductID]
		if item.Quantity > 0 {
			remaining = append(remaining, item)
		}
	}

	if len(remaining) == 0 {
		return store.Dispatch(ctx, ClearCart{})
	}

	state, err := store.Dispatch(ctx, LoadCart{Items: remaining})
	if err != nil {
		return State{}, err
	}
	if notifier != nil {
		notifier.Notify(Notification{
			Kind:    NotificationInfo,
			Message: "Ordered items removed from cart",
		})
	}
	return state, nil
}

// RemoveItem removes productID from owner's cart
func (s *Service) RemoveItem(ctx context.Context, owner Owner, productID string, notifier Notifier) (State, error) {
	return s.Apply(ctx, owner, RemoveItem{ProductID: productID}, notifier)
}

// UpdateQuantity sets the quantity of productID in owner's cart
func (s *Service) UpdateQuantity(ctx context.Context, owner Owner, productID string, quantity int, notifier Notifier) (State, error) {
	return s.Apply(ctx, owner, UpdateQuantity{ProductID: productID, Quantity: quantity}, notifier)
}

// ClearCart empties owner's cart
func (s *Service) ClearCart(ctx context.Context, owner Owner, notifier Notifier) (State, error) {
	return s.Apply(ctx, owner, ClearCart{}, notifier)
}

// LoadCart replaces owner's cart with items, typically a browser snapshot
func (s *Service) LoadCart(ctx context.Context, owner Owner, items []LineItem) (State, error) {
	return s.Apply(ctx, owner, LoadCart{Items: items}, nil)
}

// GetCartItemCount returns the total quantity in owner's cart
func (s *Service) GetCartItemCount(ctx context.Context, owner Owner) (int, error) {
	state, err := s.GetCart(ctx, owner)
	if err != nil {
		return 0, err
	}
	return state.TotalItems, nil
}

// MergeGuestCart moves the items of a guest session into the user's cart
// when they sign in. Quantities of products present in both are added. The
// guest cart is deleted afterwards.
func (s *Service) MergeGuestCart(ctx context.Context, userID, sessionID string, notifier Notifier) (State, error) {
	memberKey, err := s.Key(Member(userID))
	if err != nil {
		return State{}, err
	}
	guestKey, err := s.Key(Guest(sessionID))
	if err != nil {
		return State{}, err
	}

	unlock := s.lock(memberKey, guestKey)
	defer unlock()

	guest, err := s.open(ctx, guestKey, NopNotifier)
	if err != nil {
		return State{}, err
	}

	member, err := s.open(ctx, memberKey, NopNotifier)
	if err != nil {
		return State{}, err
	}

	guestState := guest.State()
	if guestState.IsEmpty() {
		return member.State(), nil
	}

	merged := append(member.State().Items, guestState.Items...)
	state, err := member.Load(ctx, merged)
	if err != nil {
		return State{}, err
	}

	if err := s.snapshots.Delete(ctx, guestKey); err != nil {
		s.logger.WithError(err).WithField("key", guestKey).Warn("Failed to delete merged guest cart")
	}

	if notifier != nil {
		notifier.Notify(Notification{
			Kind:    NotificationInfo,
			Message: fmt.Sprintf("%d item(s) from your guest cart were added to your cart", guestState.TotalItems),
		})
	}

	return state, nil
}

func (s *Service) open(ctx context.Context, key string, notifier Notifier) (*Store, error) {
	store := NewStore(
		WithSnapshots(s.snapshots, key),
		WithNotifier(notifier),
		WithLogger(s.logger),
	)
	if err := store.Hydrate(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// lock takes the stripe locks for keys in index order and returns the unlock
func (s *Service) lock(keys ...string) func() {
	held := make([]int, 0, len(keys))
	for _, key := range keys {
		held = append(held, stripe(key))
	}
	slices.Sort(held)
	held = slices.Compact(held)

	for _, i := range held {
		s.locks[i].Lock()
	}
	return func() {
		for j := len(held) - 1; j >= 0; j-- {
			s.locks[held[j]].Unlock()
		}
	}
}

func stripe(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % lockStripes)
}
