// internal/client/products.go
package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Product is a catalog product
type Product struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	Image         string    `json:"image,omitempty"`
	Images        []string  `json:"images,omitempty"`
	Price         float64   `json:"price"`
	DiscountPrice float64   `json:"discountPrice,omitempty"`
	PV            float64   `json:"pv,omitempty"`
	Stock         int       `json:"stock"`
	InStock       *bool     `json:"inStock,omitempty"`
	Owner         string    `json:"owner,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Available reports whether the product can be bought. An explicit inStock
// flag wins over the stock count.
func (p Product) Available() bool {
	if p.InStock != nil {
		return *p.InStock
	}
	return p.Stock > 0
}

// PrimaryImage returns the image to show in listings and the cart
func (p Product) PrimaryImage() string {
	if p.Image != "" {
		return p.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// ProductQuery filters the product listing
type ProductQuery struct {
	Page
	Category string
	Search   string
}

func (q ProductQuery) values() url.Values {
	v := q.Page.values()
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// ProductInput is the body for creating or updating a member-owned product
type ProductInput struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Images        []string `json:"images"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	DiscountPrice float64  `json:"discountPrice" binding:"gte=0"`
	PV            float64  `json:"pv" binding:"gte=0"`
	Stock         int      `json:"stock" binding:"gte=0"`
}

// ListProducts returns the public catalog
func (c *Client) ListProducts(ctx context.Context, query ProductQuery) ([]Product, error) {
	var out []Product
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/products",
		query:    query.values(),
		fallback: "Failed to fetch products",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct returns one product
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var out Product
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/products/" + url.PathEscape(id),
		fallback: "Failed to fetch product",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMyProducts returns the products owned by the signed-in member
func (c *Client) ListMyProducts(ctx context.Context, token string) ([]Product, error) {
	var out []Product
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/products/user",
		token:    token,
		fallback: "Failed to fetch your products",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct adds a member-owned product
func (c *Client) CreateProduct(ctx context.Context, token string, input ProductInput) (*Product, error) {
	var out Product
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/products",
		token:    token,
		body:     input,
		fallback: "Failed to create product",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct edits a member-owned product
func (c *Client) UpdateProduct(ctx context.Context, token, id string, input ProductInput) (*Product, error) {
	var out Product
	err := c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/products/" + url.PathEscape(id),
		token:    token,
		body:     input,
		fallback: "Failed to update product",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a member-owned product
func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		path:     "/products/" + url.PathEscape(id),
		token:    token,
		fallback: "Failed to delete product",
	}, nil)
}
