package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/client"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// respondBackendError answers with the backend's status for client errors
// and a gateway error for everything else, always carrying the message the
// backend sent.
func respondBackendError(c *gin.Context, err error) {
	_ = c.Error(err)

	var apiErr *client.APIError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusGatewayTimeout, "Backend request timed out")
	case errors.As(err, &apiErr):
		status := http.StatusBadGateway
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			status = apiErr.StatusCode
		}
		respondError(c, status, apiErr.Message)
	default:
		respondError(c, http.StatusBadGateway, err.Error())
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}

// token returns the caller's bearer token, set by the auth middleware
func token(c *gin.Context) string {
	return middleware.GetTokenFromContext(c)
}

func pageFromQuery(c *gin.Context) client.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return client.Page{Page: page, Limit: limit}
}
