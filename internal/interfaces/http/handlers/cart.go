// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront/internal/client"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

const sessionCookie = "session_id"

// ProductSource looks up catalog products
type ProductSource interface {
	GetProduct(ctx context.Context, id string) (*client.Product, error)
}

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	products    ProductSource
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, products ProductSource, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		products:    products,
		config:      cfg,
	}
}

// AddToCartRequest is the body of POST /cart/items
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateCartItemRequest is the body of PUT /cart/items/:id. A quantity of
// zero removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// LoadCartRequest carries a cart snapshot kept by the browser
type LoadCartRequest struct {
	Items []cart.LineItem `json:"items"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	state, err := h.cartService.GetCart(c.Request.Context(), h.owner(c))
	if err != nil {
		h.cartError(c, err, "Failed to retrieve cart")
		return
	}

	h.respond(c, state, nil)
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	count, err := h.cartService.GetCartItemCount(c.Request.Context(), h.owner(c))
	if err != nil {
		h.cartError(c, err, "Failed to get cart count")
		return
	}

	respondData(c, http.StatusOK, gin.H{"count": count})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	if !product.Available() {
		respondError(c, http.StatusConflict, "Product is out of stock")
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	collector := &cart.Collector{}
	state, err := h.cartService.AddItemWithinStock(c.Request.Context(), h.owner(c), cartProduct(product), quantity, product.Stock, collector)
	if err != nil {
		h.cartError(c, err, "Failed to add item to cart")
		return
	}

	h.respond(c, state, collector)
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	productID := c.Param("id")
	collector := &cart.Collector{}

	var state cart.State
	var err error
	if *req.Quantity > 0 {
		product, lookupErr := h.products.GetProduct(c.Request.Context(), productID)
		if lookupErr != nil {
			respondBackendError(c, lookupErr)
			return
		}
		if !product.Available() {
			respondError(c, http.StatusConflict, "Product is out of stock")
			return
		}
		state, err = h.cartService.UpdateQuantityWithinStock(c.Request.Context(), h.owner(c), productID, *req.Quantity, product.Stock, collector)
	} else {
		state, err = h.cartService.UpdateQuantity(c.Request.Context(), h.owner(c), productID, *req.Quantity, collector)
	}
	if err != nil {
		h.cartError(c, err, "Failed to update cart item")
		return
	}

	h.respond(c, state, collector)
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	collector := &cart.Collector{}
	state, err := h.cartService.RemoveItem(c.Request.Context(), h.owner(c), c.Param("id"), collector)
	if err != nil {
		h.cartError(c, err, "Failed to remove item from cart")
		return
	}

	h.respond(c, state, collector)
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	collector := &cart.Collector{}
	state, err := h.cartService.ClearCart(c.Request.Context(), h.owner(c), collector)
	if err != nil {
		h.cartError(c, err, "Failed to clear cart")
		return
	}

	h.respond(c, state, collector)
}

// LoadCart handles POST /cart/load
func (h *CartHandler) LoadCart(c *gin.Context) {
	var req LoadCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	state, err := h.cartService.LoadCart(c.Request.Context(), h.owner(c), req.Items)
	if err != nil {
		h.cartError(c, err, "Failed to load cart")
		return
	}

	h.respond(c, state, nil)
}

// MergeCart handles POST /cart/merge, moving the guest session cart into
// the signed-in member's cart
func (h *CartHandler) MergeCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	sessionID, err := c.Cookie(sessionCookie)
	if err != nil || sessionID == "" {
		h.GetCart(c)
		return
	}

	collector := &cart.Collector{}
	state, err := h.cartService.MergeGuestCart(c.Request.Context(), userID, sessionID, collector)
	if err != nil {
		h.cartError(c, err, "Failed to merge cart")
		return
	}

	h.respond(c, state, collector)
}

func (h *CartHandler) respond(c *gin.Context, state cart.State, collector *cart.Collector) {
	notifications := []cart.Notification{}
	if collector != nil {
		notifications = collector.Notifications()
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"data":          state,
		"notifications": notifications,
	})
}

func (h *CartHandler) cartError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, cart.ErrNoOwner):
		respondError(c, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, cart.ErrInsufficientStock):
		respondError(c, http.StatusConflict, "Requested quantity exceeds available stock")
		return
	}
	respondError(c, http.StatusInternalServerError, message)
}

// owner picks the member cart for signed-in callers and the session cart
// otherwise
func (h *CartHandler) owner(c *gin.Context) cart.Owner {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		return cart.Member(userID)
	}
	return cart.Guest(h.getOrCreateSessionID(c))
}

// getOrCreateSessionID gets session ID from cookie or creates a new one
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie(sessionCookie)
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()

		maxAge := int(h.config.Cart.TTL.Seconds())
		if maxAge <= 0 {
			maxAge = 86400
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sessionID, maxAge, "/", "", h.config.Security.SecureCookies, true)
	}

	return sessionID
}

func cartProduct(p *client.Product) cart.Product {
	return cart.Product{
		ProductID:     p.ID,
		Name:          p.Name,
		Image:         p.PrimaryImage(),
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		PV:            p.PV,
		InStock:       p.Available(),
	}
}
