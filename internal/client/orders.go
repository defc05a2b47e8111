// internal/client/orders.go
package client

import (
	"context"
	"net/http"
	"time"
)

// Payment methods accepted by the backend
const (
	PaymentMethodOnline = "online"
	PaymentMethodWallet = "wallet"
	PaymentMethodCOD    = "cod"
)

// Address is a shipping address
type Address struct {
	FullName   string `json:"fullName" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country"`
}

// OrderItem is one line of an order
type OrderItem struct {
	ProductID string  `json:"product"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	PV        float64 `json:"pv,omitempty"`
}

// OrderRequest is the body of POST /orders and POST /orders/wallet
type OrderRequest struct {
	Items           []OrderItem `json:"items"`
	ShippingAddress Address     `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	TotalAmount     float64     `json:"totalAmount"`
	TotalPV         float64     `json:"totalPV"`
}

// Order is a placed order
type Order struct {
	ID              string      `json:"_id"`
	OrderNumber     string      `json:"orderNumber,omitempty"`
	Items           []OrderItem `json:"items"`
	ShippingAddress Address     `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	PaymentStatus   string      `json:"paymentStatus,omitempty"`
	Status          string      `json:"status"`
	TotalAmount     float64     `json:"totalAmount"`
	TotalPV         float64     `json:"totalPV"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// CreateOrder places an order paid online or on delivery
func (c *Client) CreateOrder(ctx context.Context, token string, req OrderRequest) (*Order, error) {
	var out Order
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/orders",
		token:    token,
		body:     req,
		fallback: "Failed to place order",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateWalletOrder places an order paid from the member's wallet
func (c *Client) CreateWalletOrder(ctx context.Context, token string, req OrderRequest) (*Order, error) {
	var out Order
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/orders/wallet",
		token:    token,
		body:     req,
		fallback: "Failed to place wallet order",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMyOrders returns the signed-in member's orders
func (c *Client) ListMyOrders(ctx context.Context, token string) ([]Order, error) {
	var out []Order
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/orders/user",
		token:    token,
		fallback: "Failed to fetch orders",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindMyOrder returns one of the member's orders by ID. The backend has no
// single-order endpoint for members, so this filters the member's list.
func (c *Client) FindMyOrder(ctx context.Context, token, id string) (*Order, error) {
	orders, err := c.ListMyOrders(ctx, token)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id || (orders[i].OrderNumber != "" && orders[i].OrderNumber == id) {
			return &orders[i], nil
		}
	}
	return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Order not found"}
}
