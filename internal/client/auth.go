package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crmplatform-io/crm/internal/auth"
	"github.com/crmplatform-io/crm/internal/constants"
	"github.com/crmplatform-io/crm/internal/http"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// AuthClient implements crm.AuthClient.
type AuthClient struct {
	httpClient *http.Client
	session    *auth.Session
	refresher  *auth.TokenRefresher
}

// NewAuthClient creates a new auth client.
func NewAuthClient(httpClient *http.Client, session *auth.Session, refresher *auth.TokenRefresher) *AuthClient {
	return &AuthClient{
		httpClient: httpClient,
		session:    session,
		refresher:  refresher,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TenantID string `json:"tenant_id,omitempty"`
}

// Login implements crm.AuthClient.Login.
func (c *AuthClient) Login(ctx context.Context, email, password string) (*crm.LoginResponse, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/auth/login", &loginRequest{
		Email:    email,
		Password: password,
		TenantID: c.session.TenantID(),
	})
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	var login crm.LoginResponse
	if err := json.Unmarshal(resp.Body, &login); err != nil {
		return nil, fmt.Errorf("parsing login response: %w", err)
	}

	expiresIn := login.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = constants.DefaultExpiresIn
	}

	c.session.SetTokens(login.AccessToken, login.RefreshToken, time.Now().Add(time.Duration(expiresIn)*time.Second))

	return &login, nil
}

// Logout implements crm.AuthClient.Logout. Local credentials are cleared
// even when the server call fails.
func (c *AuthClient) Logout(ctx context.Context) error {
	defer c.session.Clear()

	_, err := c.httpClient.Post(ctx, "/api/v1/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("logging out: %w", err)
	}

	return nil
}

// Register implements crm.AuthClient.Register.
func (c *AuthClient) Register(ctx context.Context, request *crm.RegisterRequest) (*crm.User, error) {
	body := *request
	if body.TenantID == "" {
		body.TenantID = c.session.TenantID()
	}

	resp, err := c.httpClient.Post(ctx, "/api/v1/auth/register", &body)
	if err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	var user crm.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}

// Me implements crm.AuthClient.Me.
func (c *AuthClient) Me(ctx context.Context) (*crm.User, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	var user crm.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}

// Refresh implements crm.AuthClient.Refresh.
func (c *AuthClient) Refresh(ctx context.Context) (*crm.AuthTokens, error) {
	err := c.refresher.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	return &crm.AuthTokens{
		AccessToken:  c.session.AccessToken(),
		RefreshToken: c.session.RefreshToken(),
		TokenType:    "Bearer",
		ExpiresIn:    constants.DefaultExpiresIn,
	}, nil
}
