// Package auth holds the credential state for a CRM client and keeps
// bearer tokens fresh.
package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/crmplatform-io/crm/internal/constants"
)

// Session holds the credentials for one client instance. All methods are
// safe for concurrent use.
type Session struct {
	mu           sync.RWMutex
	apiKey       string
	accessToken  string
	refreshToken string
	tenantID     string
	expiresAt    time.Time
	autoRefresh  bool
}

// NewSession creates a session seeded with static credentials. Either or
// both of apiKey and accessToken may be empty.
func NewSession(apiKey, accessToken, tenantID string, autoRefresh bool) *Session {
	return &Session{
		apiKey:      apiKey,
		accessToken: accessToken,
		tenantID:    tenantID,
		autoRefresh: autoRefresh,
	}
}

// APIKey returns the configured API key, if any.
func (s *Session) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.apiKey
}

// AccessToken returns the current bearer token, if any.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accessToken
}

// RefreshToken returns the current refresh token, if any.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.refreshToken
}

// TenantID returns the tenant scope, if any.
func (s *Session) TenantID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tenantID
}

// ExpiresAt returns the access token expiry, zero when unknown.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.expiresAt
}

// Authenticated reports whether the session carries any credential.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.apiKey != "" || s.accessToken != ""
}

// SetTenantID changes the tenant scope for subsequent requests.
func (s *Session) SetTenantID(tenantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tenantID = tenantID
}

// SetTokens installs a new token pair and expiry in one step so readers
// never observe a token with a stale expiry.
func (s *Session) SetTokens(accessToken, refreshToken string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = accessToken
	if refreshToken != "" {
		s.refreshToken = refreshToken
	}

	s.expiresAt = expiresAt
}

// SetAccessToken replaces only the bearer token, keeping the refresh token.
func (s *Session) SetAccessToken(accessToken string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = accessToken
	s.expiresAt = expiresAt
}

// Clear drops all token state. The API key, being static configuration,
// survives.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = ""
	s.refreshToken = ""
	s.expiresAt = time.Time{}
}

// NeedsRefresh reports whether the access token should be refreshed before
// the next request. It is true only when auto-refresh is enabled, a refresh
// token is held, the expiry is known, and now is within the refresh margin
// of that expiry.
func (s *Session) NeedsRefresh(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.autoRefresh || s.refreshToken == "" {
		return false
	}

	if s.expiresAt.IsZero() {
		return false
	}

	return !now.Before(s.expiresAt.Add(-constants.TokenRefreshMargin))
}

// ApplyHeaders writes the credential headers for a request. The API key
// takes priority over a bearer token when both are present.
func (s *Session) ApplyHeaders(headers http.Header) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")

	switch {
	case s.apiKey != "":
		headers.Set("X-API-Key", s.apiKey)
	case s.accessToken != "":
		headers.Set("Authorization", "Bearer "+s.accessToken)
	}

	if s.tenantID != "" {
		headers.Set("X-Tenant-ID", s.tenantID)
	}
}
