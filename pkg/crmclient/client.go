// Package crmclient provides the main entry point for creating CRM API clients
package crmclient

import (
	"fmt"
	"strings"

	"github.com/crmplatform-io/crm/internal/client"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// New creates a new CRM API client from the given configuration.
func New(config *crm.Config) (crm.Client, error) {
	if config == nil {
		return nil, crm.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, crm.ErrBaseURLRequired
	}

	// Normalize base URL
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	config.BaseURL = baseURL

	// Use the internal client implementation
	crmClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return crmClient, nil
}

// NewWithAPIKey creates a new client authenticating with an API key,
// optionally scoped to a tenant.
func NewWithAPIKey(baseURL, apiKey, tenantID string) (crm.Client, error) {
	return New(&crm.Config{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		TenantID: tenantID,
	})
}

// NewWithToken creates a new client with a pre-existing access token.
func NewWithToken(baseURL, token string) (crm.Client, error) {
	return New(&crm.Config{
		BaseURL:     baseURL,
		AccessToken: token,
	})
}

// NewUnauthenticated creates a client with no credentials. Callers are
// expected to authenticate through Auth().Login before using protected
// endpoints.
func NewUnauthenticated(baseURL string) (crm.Client, error) {
	return New(&crm.Config{
		BaseURL: baseURL,
	})
}
