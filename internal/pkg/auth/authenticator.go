package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/your-org/storefront/internal/client"
	"github.com/your-org/storefront/internal/config"
)

// Authentication errors
var (
	ErrTokenRejected       = errors.New("token rejected by backend")
	ErrVerifierUnavailable = errors.New("token could not be verified")
)

const (
	confirmedTokenTTL = 5 * time.Minute
	maxCachedTokens   = 10000
)

// ProfileSource fetches the member a bearer token belongs to
type ProfileSource interface {
	Profile(ctx context.Context, token string) (*client.User, error)
}

type confirmedToken struct {
	claims *Claims
	until  time.Time
}

// Authenticator turns bearer tokens into member identities. With JWT_SECRET
// set the signature is checked locally. Without it a token is only trusted
// after the backend has accepted it, and that answer is cached until the
// token expires or confirmedTokenTTL passes.
type Authenticator struct {
	jwt      *JWTManager
	profiles ProfileSource
	now      func() time.Time

	mu        sync.Mutex
	confirmed map[string]confirmedToken
}

// NewAuthenticator creates an authenticator. profiles may be nil when a
// secret is configured.
func NewAuthenticator(cfg *config.Config, profiles ProfileSource) *Authenticator {
	return &Authenticator{
		jwt:       NewJWTManager(cfg),
		profiles:  profiles,
		now:       time.Now,
		confirmed: make(map[string]confirmedToken),
	}
}

// Authenticate returns the claims of token once it is known to be genuine
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := a.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if a.jwt.Verifies() {
		return claims, nil
	}

	if cached, ok := a.lookup(token); ok {
		return cached, nil
	}

	if a.profiles == nil {
		return nil, ErrVerifierUnavailable
	}

	if _, err := a.profiles.Profile(ctx, token); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusBadRequest && apiErr.StatusCode < http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: %s", ErrTokenRejected, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}

	a.remember(token, claims)
	return claims, nil
}

func (a *Authenticator) lookup(token string) (*Claims, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.confirmed[token]
	if !ok {
		return nil, false
	}
	if !a.now().Before(entry.until) {
		delete(a.confirmed, token)
		return nil, false
	}
	return entry.claims, true
}

func (a *Authenticator) remember(token string, claims *Claims) {
	now := a.now()
	until := now.Add(confirmedTokenTTL)
	if exp := claims.ExpiresAt; exp != nil && exp.Time.Before(until) {
		until = exp.Time
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.confirmed) >= maxCachedTokens {
		for t, entry := range a.confirmed {
			if !now.Before(entry.until) {
				delete(a.confirmed, t)
			}
		}
		if len(a.confirmed) >= maxCachedTokens {
			a.confirmed = make(map[string]confirmedToken)
		}
	}

	a.confirmed[token] = confirmedToken{claims: claims, until: until}
}
