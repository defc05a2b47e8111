// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/client"
)

// OrderHandler lists the member's orders
type OrderHandler struct {
	backend *client.Client
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(backend *client.Client) *OrderHandler {
	return &OrderHandler{backend: backend}
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.backend.ListMyOrders(c.Request.Context(), token(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id, matching either the ID or the order number
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.backend.FindMyOrder(c.Request.Context(), token(c), c.Param("id"))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}
