package client

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
)

// Auth carries the bearer credential. The portal never verifies the token;
// it only reads a JWT's exp claim so an expired session fails before any
// request is sent.
type Auth struct {
	mu     sync.RWMutex
	token  string
	expiry time.Time // zero when the token is opaque or has no exp
}

// NewAuth creates an Auth for token, which may be empty.
func NewAuth(token string) *Auth {
	a := &Auth{}
	a.SetToken(token)
	return a
}

// SetToken replaces the credential
func (a *Auth) SetToken(token string) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	expiry := tokenExpiry(token)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
	a.expiry = expiry
}

// Check returns UNAUTHORIZED when the token is a JWT whose exp has passed.
func (a *Auth) Check(now time.Time) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.expiry.IsZero() && !now.Before(a.expiry) {
		return shared.NewUnauthorizedError("")
	}
	return nil
}

// Apply sets the Authorization header when a token is configured.
func (a *Auth) Apply(req *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
}

func tokenExpiry(token string) time.Time {
	if strings.Count(token, ".") != 2 {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
