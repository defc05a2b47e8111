// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	collector := &cart.Collector{}
	order, state, err := h.checkoutService.Checkout(c.Request.Context(), token(c), cart.Member(userID), req, collector)
	if err != nil {
		var stockErr *checkout.OutOfStockError
		switch {
		case errors.As(err, &stockErr):
			c.JSON(http.StatusConflict, gin.H{
				"success":     false,
				"error":       "Some items are out of stock",
				"product_ids": stockErr.ProductIDs,
				"data":        state,
			})
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(c, http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, checkout.ErrInvalidPayment):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, checkout.ErrMissingCredentials):
			respondError(c, http.StatusUnauthorized, err.Error())
		default:
			respondBackendError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       "Order placed successfully",
		"data":          order,
		"cart":          state,
		"notifications": collector.Notifications(),
	})
}
