package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
)

var (
	// ErrNotAuthenticated is returned when no token is stored. The request is not sent.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUnauthorized is returned when the API rejected the token. The token has been cleared.
	ErrUnauthorized = errors.New("session expired or revoked")
)

// Reason explains why the login surface is shown.
type Reason string

// Login redirect reasons.
const (
	ReasonMissing Reason = "missing"
	ReasonExpired Reason = "expired"
	ReasonLogout  Reason = "logout"
)

// Navigator sends the user to the login surface.
type Navigator interface {
	ToLogin(reason Reason)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(reason Reason)

// ToLogin calls f(reason).
func (f NavigatorFunc) ToLogin(reason Reason) {
	f(reason)
}

// Doer performs HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Manager owns the token lifecycle and is the only place request
// authentication is decided. It never retries.
type Manager struct {
	store  Store
	nav    Navigator
	client Doer
}

// NewManager creates a Manager. A nil client uses http.DefaultClient and a
// nil navigator ignores redirects.
func NewManager(store Store, nav Navigator, client Doer) *Manager {
	if client == nil {
		client = http.DefaultClient
	}
	if nav == nil {
		nav = NavigatorFunc(func(Reason) {})
	}
	return &Manager{store: store, nav: nav, client: client}
}

// Token returns the stored token. The second result is false when there is none.
func (m *Manager) Token() (string, bool) {
	token, err := m.store.Load()
	if err != nil {
		log.Printf("[session] %v", err)
		return "", false
	}
	return token, token != ""
}

// SetToken stores token, overwriting any previous value.
func (m *Manager) SetToken(token string) error {
	return m.store.Save(token)
}

// ClearToken removes the stored token.
func (m *Manager) ClearToken() error {
	return m.store.Delete()
}

// RequireAuth reports whether a token is stored. When it is not and
// redirectOnMissing is set, the navigator is sent to the login surface.
func (m *Manager) RequireAuth(redirectOnMissing bool) bool {
	if _, ok := m.Token(); ok {
		return true
	}
	if redirectOnMissing {
		m.nav.ToLogin(ReasonMissing)
	}
	return false
}

// Logout clears the token and sends the navigator to the login surface.
func (m *Manager) Logout() error {
	err := m.ClearToken()
	m.nav.ToLogin(ReasonLogout)
	return err
}

// Send performs a copy of req carrying the bearer token; req itself is not
// modified.
//
// Without a stored token the request is not sent: the navigator is redirected
// and ErrNotAuthenticated returned. A 401 response clears the token, redirects
// and returns ErrUnauthorized with the body already closed. Any other response
// is returned as is for the caller to interpret.
func (m *Manager) Send(ctx context.Context, req *http.Request) (*http.Response, error) {
	token, ok := m.Token()
	if !ok {
		m.nav.ToLogin(ReasonMissing)
		return nil, ErrNotAuthenticated
	}

	req = req.Clone(ctx)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = resp.Body.Close()
		if err := m.ClearToken(); err != nil {
			log.Printf("[session] failed to clear rejected token: %v", err)
		}
		m.nav.ToLogin(ReasonExpired)
		return nil, ErrUnauthorized
	}
	return resp, nil
}
