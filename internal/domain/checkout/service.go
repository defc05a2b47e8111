// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/client"
	"github.com/your-org/storefront/internal/domain/cart"
)

// Checkout errors
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOutOfStock         = errors.New("cart contains out-of-stock items")
	ErrInvalidPayment     = errors.New("unsupported payment method")
	ErrMissingCredentials = errors.New("sign in to place an order")
)

// Backend is the part of the API client checkout needs
type Backend interface {
	CreateOrder(ctx context.Context, token string, req client.OrderRequest) (*client.Order, error)
	CreateWalletOrder(ctx context.Context, token string, req client.OrderRequest) (*client.Order, error)
}

// Request is what the member submits at checkout
type Request struct {
	ShippingAddress client.Address `json:"shipping_address" binding:"required"`
	PaymentMethod   string         `json:"payment_method" binding:"required"`
}

// OutOfStockError names the lines that blocked checkout
type OutOfStockError struct {
	ProductIDs []string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOutOfStock, strings.Join(e.ProductIDs, ", "))
}

func (e *OutOfStockError) Unwrap() error {
	return ErrOutOfStock
}

// Service turns a cart into a backend order
type Service struct {
	carts   *cart.Service
	backend Backend
	logger  logrus.FieldLogger
}

// NewService creates a new checkout service
func NewService(carts *cart.Service, backend Backend, logger logrus.FieldLogger) *Service {
	return &Service{
		carts:   carts,
		backend: backend,
		logger:  logger,
	}
}

// Checkout places an order for owner's cart and, once the backend has
// accepted it, removes the ordered lines. Items added while the order was in
// flight are kept. A failed order leaves the cart untouched.
func (s *Service) Checkout(ctx context.Context, token string, owner cart.Owner, req Request, notifier cart.Notifier) (*client.Order, cart.State, error) {
	if token == "" {
		return nil, cart.State{}, ErrMissingCredentials
	}

	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	switch method {
	case client.PaymentMethodOnline, client.PaymentMethodWallet, client.PaymentMethodCOD:
	default:
		return nil, cart.State{}, fmt.Errorf("%w: %q", ErrInvalidPayment, req.PaymentMethod)
	}

	state, err := s.carts.GetCart(ctx, owner)
	if err != nil {
		return nil, cart.State{}, fmt.Errorf("failed to load cart: %w", err)
	}
	if state.IsEmpty() {
		return nil, state, ErrEmptyCart
	}

	var unavailable []string
	for _, item := range state.Items {
		if !item.InStock {
			unavailable = append(unavailable, item.ProductID)
		}
	}
	if len(unavailable) > 0 {
		return nil, state, &OutOfStockError{ProductIDs: unavailable}
	}

	orderReq := BuildOrderRequest(state, req.ShippingAddress, method)

	var order *client.Order
	if method == client.PaymentMethodWallet {
		order, err = s.backend.CreateWalletOrder(ctx, token, orderReq)
	} else {
		order, err = s.backend.CreateOrder(ctx, token, orderReq)
	}
	if err != nil {
		s.logger.WithError(err).WithField("payment_method", method).Warn("Order was not placed")
		return nil, state, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":       order.ID,
		"payment_method": method,
		"total_amount":   orderReq.TotalAmount,
	}).Info("Order placed")

	remaining, err := s.carts.RemoveOrdered(ctx, owner, state.Items, notifier)
	if err != nil {
		// The order exists, so it is still reported as placed.
		s.logger.WithError(err).WithField("order_id", order.ID).Error("Failed to remove ordered items from cart")
		return order, state, nil
	}

	return order, remaining, nil
}

// BuildOrderRequest converts cart lines into the backend order body
func BuildOrderRequest(state cart.State, address client.Address, method string) client.OrderRequest {
	items := make([]client.OrderItem, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, client.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice(),
			PV:        item.PV,
		})
	}

	return client.OrderRequest{
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   method,
		TotalAmount:     state.TotalAmount,
		TotalPV:         state.TotalPV,
	}
}
