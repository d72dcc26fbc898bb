// Package client implements the crm.Client interface over the HTTP
// dispatcher.
package client

import (
	"context"
	nethttp "net/http"

	"github.com/crmplatform-io/crm/internal/auth"
	"github.com/crmplatform-io/crm/internal/constants"
	"github.com/crmplatform-io/crm/internal/http"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// Client implements the crm.Client interface.
type Client struct {
	httpClient *http.Client
	session    *auth.Session
	refresher  *auth.TokenRefresher
	baseURL    string
	logger     crm.Logger

	// Resource clients
	authClient    crm.AuthClient
	users         crm.UsersClient
	tenants       crm.TenantsClient
	customers     crm.CustomersClient
	contacts      crm.ContactsClient
	leads         crm.LeadsClient
	opportunities crm.OpportunitiesClient
	deals         crm.DealsClient
	pipelines     crm.PipelinesClient
}

// credentialSource bridges the auth session into the HTTP dispatcher.
type credentialSource struct {
	session   *auth.Session
	refresher *auth.TokenRefresher
}

func (s *credentialSource) EnsureFresh(ctx context.Context) error {
	return s.refresher.EnsureFresh(ctx)
}

func (s *credentialSource) ApplyHeaders(headers nethttp.Header) {
	s.session.ApplyHeaders(headers)
}

// New creates a new CRM API client.
func New(config *crm.Config) (*Client, error) {
	if config == nil {
		return nil, crm.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, crm.ErrBaseURLRequired
	}

	session := auth.NewSession(config.APIKey, config.AccessToken, config.TenantID, !config.DisableAutoRefresh)
	refresher := auth.NewTokenRefresher(session, config.BaseURL, config.Timeout, config.Logger)

	httpOpts, err := buildHTTPOptions(config)
	if err != nil {
		return nil, err
	}

	creds := &credentialSource{session: session, refresher: refresher}
	httpClient := http.NewClient(config.BaseURL, creds, httpOpts...)

	client := &Client{
		httpClient: httpClient,
		session:    session,
		refresher:  refresher,
		baseURL:    config.BaseURL,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// buildHTTPOptions maps the public config onto dispatcher options.
func buildHTTPOptions(config *crm.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = "crm-go-sdk/1.0"
	}

	httpOpts = append(httpOpts, http.WithUserAgent(userAgent))

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	} else {
		// Retry policy belongs to the caller unless opted in.
		httpOpts = append(httpOpts, http.WithRetryConfig(0, constants.DefaultRetryWaitMin, constants.DefaultRetryWaitMax))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if config.Cache != nil {
		cache, err := crm.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, err
		}

		httpOpts = append(httpOpts, http.WithCache(cache, config.CacheTTL))
	}

	return httpOpts, nil
}

// Session exposes the credential state, mainly for the CLI.
func (c *Client) Session() *auth.Session {
	return c.session
}

// Resource client accessors

// Auth implements crm.Client.Auth.
func (c *Client) Auth() crm.AuthClient {
	return c.authClient
}

// Users implements crm.Client.Users.
func (c *Client) Users() crm.UsersClient {
	return c.users
}

// Tenants implements crm.Client.Tenants.
func (c *Client) Tenants() crm.TenantsClient {
	return c.tenants
}

// Customers implements crm.Client.Customers.
func (c *Client) Customers() crm.CustomersClient {
	return c.customers
}

// Contacts implements crm.Client.Contacts.
func (c *Client) Contacts() crm.ContactsClient {
	return c.contacts
}

// Leads implements crm.Client.Leads.
func (c *Client) Leads() crm.LeadsClient {
	return c.leads
}

// Opportunities implements crm.Client.Opportunities.
func (c *Client) Opportunities() crm.OpportunitiesClient {
	return c.opportunities
}

// Deals implements crm.Client.Deals.
func (c *Client) Deals() crm.DealsClient {
	return c.deals
}

// Pipelines implements crm.Client.Pipelines.
func (c *Client) Pipelines() crm.PipelinesClient {
	return c.pipelines
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.authClient = NewAuthClient(c.httpClient, c.session, c.refresher)
	c.users = NewUsersClient(c.httpClient)
	c.tenants = NewTenantsClient(c.httpClient)
	c.customers = NewCustomersClient(c.httpClient)
	c.contacts = NewContactsClient(c.httpClient)
	c.leads = NewLeadsClient(c.httpClient)
	c.opportunities = NewOpportunitiesClient(c.httpClient)
	c.deals = NewDealsClient(c.httpClient)
	c.pipelines = NewPipelinesClient(c.httpClient)
}
