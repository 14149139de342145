package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the informational content of a stored JWT.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed at now.
// Tokens without an expiry never expire.
func (c *TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// ParseClaims decodes a JWT without verifying its signature. The client has
// no signing key; the result is for display only and never decides whether
// a request is authenticated.
func ParseClaims(token string) (*TokenClaims, error) {
	if token == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	out := &TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Claims decodes the stored token.
func (m *Manager) Claims() (*TokenClaims, error) {
	token, ok := m.Token()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return ParseClaims(token)
}
