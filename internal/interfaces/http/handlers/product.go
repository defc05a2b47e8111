// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/client"
)

// ProductHandler proxies the catalog and the member's own listings
type ProductHandler struct {
	backend *client.Client
}

// NewProductHandler creates a new product handler
func NewProductHandler(backend *client.Client) *ProductHandler {
	return &ProductHandler{backend: backend}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	query := client.ProductQuery{
		Page:     pageFromQuery(c),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	products, err := h.backend.ListProducts(c.Request.Context(), query)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, products)
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.backend.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, product)
}

// GetMyProducts handles GET /products/mine
func (h *ProductHandler) GetMyProducts(c *gin.Context) {
	products, err := h.backend.ListMyProducts(c.Request.Context(), token(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, products)
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req client.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := h.backend.CreateProduct(c.Request.Context(), token(c), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req client.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := h.backend.UpdateProduct(c.Request.Context(), token(c), c.Param("id"), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.backend.DeleteProduct(c.Request.Context(), token(c), c.Param("id")); err != nil {
		respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}
