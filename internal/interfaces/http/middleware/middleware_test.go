package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/client"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type counterRedis struct {
	redis.Cmdable
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Duration
	err     error
}

func newCounterRedis() *counterRedis {
	return &counterRedis{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

// EvalSha stands in for rateLimitScript: count the hit and set the window
// when the key has none.
func (r *counterRedis) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return redis.NewCmdResult(nil, r.err)
	}
	key := keys[0]
	r.counts[key]++
	if _, ok := r.expires[key]; !ok {
		r.expires[key] = time.Duration(args[0].(int)) * time.Second
	}
	return redis.NewCmdResult(r.counts[key], nil)
}

func perform(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "caller-1")
	w = perform(r, req)
	assert.Equal(t, "caller-1", w.Body.String())
}

func TestRequestSizeLimit(t *testing.T) {
	r := gin.New()
	r.Use(RequestSizeLimit(8))
	r.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := perform(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this body is too long")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{Security: config.SecurityConfig{RateLimitPerMinute: 2}}

	t.Run("blocks over the limit", func(t *testing.T) {
		rdb := newCounterRedis()
		r := gin.New()
		r.Use(RateLimit(cfg, rdb, logging.Discard()))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
		w := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

		w = perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))

		assert.Equal(t, map[string]time.Duration{"rate_limit:192.0.2.1": time.Minute}, rdb.expires)
		assert.Equal(t, int64(3), rdb.counts["rate_limit:192.0.2.1"])
	})

	t.Run("key without a window gets one", func(t *testing.T) {
		rdb := newCounterRedis()
		rdb.counts["rate_limit:192.0.2.1"] = 5
		r := gin.New()
		r.Use(RateLimit(cfg, rdb, logging.Discard()))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		assert.Equal(t, http.StatusTooManyRequests, perform(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
		assert.Equal(t, time.Minute, rdb.expires["rate_limit:192.0.2.1"])
	})

	t.Run("redis failure lets requests through", func(t *testing.T) {
		rdb := newCounterRedis()
		rdb.err = errors.New("connection refused")
		r := gin.New()
		r.Use(RateLimit(cfg, rdb, logging.Discard()))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
		}
	})

	t.Run("disabled without redis", func(t *testing.T) {
		r := gin.New()
		r.Use(RateLimit(cfg, nil, logging.Discard()))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
		}
	})
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	r.GET("/fast", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusGatewayTimeout, perform(r, httptest.NewRequest(http.MethodGet, "/slow", nil)).Code)
	assert.Equal(t, http.StatusNoContent, perform(r, httptest.NewRequest(http.MethodGet, "/fast", nil)).Code)
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{Security: config.SecurityConfig{
		CORSAllowedOrigins: []string{"https://shop.example.com", "https://*.partners.example.com"},
		CORSAllowedMethods: []string{"GET", "POST"},
		CORSAllowedHeaders: []string{"Content-Type", "Authorization"},
	}}
	r := gin.New()
	r.Use(CORS(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", "GET")
		return perform(r, req)
	}

	w := preflight("https://shop.example.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = preflight("https://eu.partners.example.com")
	assert.Equal(t, "https://eu.partners.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("https://evil.example.org")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSAllowAll(t *testing.T) {
	c := corsConfig(&config.Config{Security: config.SecurityConfig{CORSAllowedOrigins: []string{"*"}}})
	assert.True(t, c.AllowAllOrigins)
	assert.Empty(t, c.AllowOrigins)
	assert.False(t, c.AllowCredentials)
}

type fakeProfiles struct {
	down bool
}

func (f fakeProfiles) Profile(_ context.Context, token string) (*client.User, error) {
	if f.down {
		return nil, &client.APIError{Message: "Failed to fetch profile", Err: errors.New("connection refused")}
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("backend-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, &client.APIError{StatusCode: http.StatusUnauthorized, Message: "Not authorized"}
	}
	return &client.User{ID: claims["id"].(string)}, nil
}

func authRouter(authenticator *auth.Authenticator) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(authenticator), func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user": userID, "token": GetTokenFromContext(c)})
	})
	r.GET("/maybe", OptionalAuthMiddleware(authenticator), func(c *gin.Context) {
		_, ok := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"member": ok})
	})
	return r
}

func bearer(path, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthMiddleware(t *testing.T) {
	r := authRouter(auth.NewAuthenticator(&config.Config{}, fakeProfiles{}))
	exp := time.Now().Add(time.Hour).Unix()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u9",
		"exp": exp,
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	w := perform(r, bearer("/me", token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"u9"`)
	assert.Contains(t, w.Body.String(), token)

	assert.Equal(t, http.StatusUnauthorized, perform(r, bearer("/me", "")).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, bearer("/me", "nope")).Code)

	w = perform(r, bearer("/maybe", "nope"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"member":false}`, w.Body.String())

	t.Run("unsigned token naming another member", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"id":  "victim",
			"exp": exp,
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, perform(r, bearer("/me", forged)).Code)

		w := perform(r, bearer("/maybe", forged))
		assert.JSONEq(t, `{"member":false}`, w.Body.String())
	})

	t.Run("backend unreachable", func(t *testing.T) {
		r := authRouter(auth.NewAuthenticator(&config.Config{}, fakeProfiles{down: true}))

		assert.Equal(t, http.StatusBadGateway, perform(r, bearer("/me", token)).Code)
	})
}
