package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/crmplatform-io/crm/internal/constants"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// TokenRefresher exchanges a refresh token for a new access token against
// the auth endpoint. It uses its own HTTP client so a refresh never
// recurses through the request dispatcher it is guarding.
type TokenRefresher struct {
	session    *Session
	baseURL    string
	httpClient *http.Client
	logger     crm.Logger

	mu sync.Mutex
}

// NewTokenRefresher creates a refresher for the given session.
func NewTokenRefresher(session *Session, baseURL string, timeout time.Duration, logger crm.Logger) *TokenRefresher {
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	return &TokenRefresher{
		session:    session,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// EnsureFresh refreshes the access token if it is within the refresh
// margin of expiry. Concurrent callers coalesce on one refresh.
func (r *TokenRefresher) EnsureFresh(ctx context.Context) error {
	if !r.session.NeedsRefresh(time.Now()) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if !r.session.NeedsRefresh(time.Now()) {
		return nil
	}

	return r.refresh(ctx)
}

// Refresh forces a token refresh regardless of expiry.
func (r *TokenRefresher) Refresh(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.refresh(ctx)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

// refresh performs the token exchange. Caller holds the lock. On failure
// the session's existing tokens are left untouched.
func (r *TokenRefresher) refresh(ctx context.Context) error {
	refreshToken := r.session.RefreshToken()
	if refreshToken == "" {
		return crm.NewAuthenticationError("No refresh token available")
	}

	body, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return fmt.Errorf("encoding refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/v1/auth/refresh", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building refresh request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return crm.NewNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return crm.NewAuthenticationError("Failed to refresh token")
	}

	var tokens refreshResponse

	err = json.NewDecoder(resp.Body).Decode(&tokens)
	if err != nil {
		return fmt.Errorf("decoding refresh response: %w", err)
	}

	expiresIn := tokens.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = constants.DefaultExpiresIn
	}

	r.session.SetTokens(tokens.AccessToken, tokens.RefreshToken, time.Now().Add(time.Duration(expiresIn)*time.Second))

	if r.logger != nil {
		r.logger.Debug("access token refreshed", map[string]interface{}{
			"expires_in": expiresIn,
		})
	}

	return nil
}
