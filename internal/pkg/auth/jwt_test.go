package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateTokenWithSecret(t *testing.T) {
	mgr := NewJWTManager(&config.Config{JWT: config.JWTConfig{Secret: testSecret}})
	require.True(t, mgr.Verifies())

	t.Run("round trip", func(t *testing.T) {
		token, err := mgr.GenerateAccessToken("u42", time.Hour)
		require.NoError(t, err)

		claims, err := mgr.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "u42", claims.MemberID())
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token := signed(t, "another-secret-another-secret-xx", jwt.MapClaims{
			"id":  "u1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := mgr.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired rejected", func(t *testing.T) {
		token := signed(t, testSecret, jwt.MapClaims{
			"id":  "u1",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})

		_, err := mgr.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})
}

func TestValidateTokenWithoutSecret(t *testing.T) {
	mgr := NewJWTManager(&config.Config{})
	require.False(t, mgr.Verifies())

	t.Run("backend token accepted unverified", func(t *testing.T) {
		token := signed(t, "backend-only-secret", jwt.MapClaims{
			"userId": "m-77",
			"exp":    time.Now().Add(time.Hour).Unix(),
		})

		claims, err := mgr.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "m-77", claims.MemberID())
	})

	t.Run("expired rejected", func(t *testing.T) {
		token := signed(t, "backend-only-secret", jwt.MapClaims{
			"id":  "u1",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})

		_, err := mgr.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("no user rejected", func(t *testing.T) {
		token := signed(t, "backend-only-secret", jwt.MapClaims{"role": "member"})

		_, err := mgr.ValidateToken(token)
		assert.ErrorIs(t, err, ErrMissingUser)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := mgr.ValidateToken("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("cannot sign", func(t *testing.T) {
		_, err := mgr.GenerateAccessToken("u1", time.Hour)
		assert.Error(t, err)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Empty(t, ExtractTokenFromHeader("Basic abc"))
	assert.Empty(t, ExtractTokenFromHeader("Bearer "))
}
