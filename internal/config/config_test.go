package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("BACKEND_BASE_URL", "")
		t.Setenv("CART_STORE", "")

		cfg := FromEnv()

		assert.Equal(t, "http://localhost:5000/api", cfg.Backend.BaseURL)
		assert.Equal(t, CartStoreRedis, cfg.Cart.Store)
		assert.Equal(t, 30*24*time.Hour, cfg.Cart.TTL)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("base URL trailing slash is trimmed", func(t *testing.T) {
		t.Setenv("BACKEND_BASE_URL", "https://api.example.com/api/")

		cfg := FromEnv()

		assert.Equal(t, "https://api.example.com/api", cfg.Backend.BaseURL)
	})

	t.Run("slices are trimmed", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

		cfg := FromEnv()

		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Security.CORSAllowedOrigins)
	})

	t.Run("bad values fall back to defaults", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
		t.Setenv("CART_TTL", "forever")

		cfg := FromEnv()

		assert.Equal(t, 120, cfg.Security.RateLimitPerMinute)
		assert.Equal(t, 30*24*time.Hour, cfg.Cart.TTL)
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := FromEnv()
		cfg.Backend.BaseURL = "http://backend.local/api"
		cfg.Cart.Store = CartStoreMemory
		cfg.JWT.Secret = ""
		return cfg
	}

	require.NoError(t, base().Validate())

	cases := map[string]func(*Config){
		"missing base URL":  func(c *Config) { c.Backend.BaseURL = "" },
		"non-http base URL": func(c *Config) { c.Backend.BaseURL = "ftp://backend" },
		"short secret":      func(c *Config) { c.JWT.Secret = "short" },
		"unknown store":     func(c *Config) { c.Cart.Store = "mongo" },
		"postgres no host":  func(c *Config) { c.Cart.Store = CartStorePostgres; c.Database.Host = "" },
		"redis no host":     func(c *Config) { c.Cart.Store = CartStoreRedis; c.Redis.Host = "" },
		"missing port":      func(c *Config) { c.Server.Port = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
