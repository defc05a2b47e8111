// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	userIDKey      = "user_id"
	accessTokenKey = "access_token"
	tokenClaimsKey = "token_claims"
)

// AuthMiddleware requires a bearer token the authenticator accepts
func AuthMiddleware(authenticator *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authorization header required",
			})
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid authorization header format",
			})
			return
		}

		claims, err := authenticator.Authenticate(c.Request.Context(), tokenString)
		if errors.Is(err, auth.ErrVerifierUnavailable) {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
				"success": false,
				"error":   "Unable to verify token",
			})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired token",
			})
			return
		}

		setIdentity(c, tokenString, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware provides optional authentication. A missing token,
// or one that cannot be confirmed, leaves the request anonymous.
func OptionalAuthMiddleware(authenticator *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := authenticator.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			c.Next()
			return
		}

		setIdentity(c, tokenString, claims)
		c.Next()
	}
}

func setIdentity(c *gin.Context, token string, claims *auth.Claims) {
	c.Set(userIDKey, claims.MemberID())
	c.Set(accessTokenKey, token)
	c.Set(tokenClaimsKey, claims)
}

// GetUserIDFromContext extracts user ID from gin context
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID := c.GetString(userIDKey)
	return userID, userID != ""
}

// GetTokenFromContext returns the bearer token forwarded to the backend
func GetTokenFromContext(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}

// GetClaimsFromContext returns the parsed token claims
func GetClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(tokenClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
