// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/client"
)

// AuthHandler forwards sign-in and registration to the backend
type AuthHandler struct {
	backend *client.Client
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(backend *client.Client) *AuthHandler {
	return &AuthHandler{backend: backend}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req client.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	response, err := h.backend.Register(c.Request.Context(), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"data":    response,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req client.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	response, err := h.backend.Login(c.Request.Context(), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    response,
	})
}
