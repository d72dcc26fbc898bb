package crm

import (
	"context"
	"time"
)

// Client provides access to every resource family of the CRM API.
type Client interface {
	Auth() AuthClient
	Users() UsersClient
	Tenants() TenantsClient
	Customers() CustomersClient
	Contacts() ContactsClient
	Leads() LeadsClient
	Opportunities() OpportunitiesClient
	Deals() DealsClient
	Pipelines() PipelinesClient
}

// AuthClient manages the credential lifecycle.
type AuthClient interface {
	// Login authenticates with email and password and stores the issued
	// tokens on the client session in one step.
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	// Logout invalidates the session server-side on a best-effort basis:
	// local credentials are always cleared, even when the call fails.
	Logout(ctx context.Context) error
	Register(ctx context.Context, request *RegisterRequest) (*User, error)
	Me(ctx context.Context) (*User, error)
	// Refresh forces a token refresh regardless of the current expiry.
	Refresh(ctx context.Context) (*AuthTokens, error)
}

// UsersClient manages platform users.
type UsersClient interface {
	List(ctx context.Context, opts *ListOptions) (*ListResponse[User], error)
	Get(ctx context.Context, userID string) (*User, error)
	Create(ctx context.Context, request *UserCreateRequest) (*User, error)
	Update(ctx context.Context, userID string, request *UserUpdateRequest) (*User, error)
	Delete(ctx context.Context, userID string) error
}

// TenantsClient manages tenants.
type TenantsClient interface {
	List(ctx context.Context, opts *ListOptions) (*ListResponse[Tenant], error)
	Get(ctx context.Context, tenantID string) (*Tenant, error)
	Create(ctx context.Context, request *TenantCreateRequest) (*Tenant, error)
}

// CustomersClient manages customer accounts.
type CustomersClient interface {
	List(ctx context.Context, opts *ListOptions) (*ListResponse[Customer], error)
	Get(ctx context.Context, customerID string) (*Customer, error)
	Create(ctx context.Context, request *CustomerCreateRequest) (*Customer, error)
	Update(ctx context.Context, customerID string, request *CustomerUpdateRequest) (*Customer, error)
	Delete(ctx context.Context, customerID string) error
	// Search runs a non-paginated free-text search.
	Search(ctx context.Context, query string, limit int) ([]Customer, error)
}

// ContactsClient manages contacts nested under customers.
type ContactsClient interface {
	List(ctx context.Context, customerID string) ([]Contact, error)
	Get(ctx context.Context, customerID, contactID string) (*Contact, error)
	Create(ctx context.Context, customerID string, request *ContactCreateRequest) (*Contact, error)
	Delete(ctx context.Context, customerID, contactID string) error
}

// LeadsClient manages sales leads.
type LeadsClient interface {
	List(ctx context.Context, opts *ListOptions) (*ListResponse[Lead], error)
	Get(ctx context.Context, leadID string) (*Lead, error)
	Create(ctx context.Context, request *LeadCreateRequest) (*Lead, error)
	Update(ctx context.Context, leadID string, request *LeadUpdateRequest) (*Lead, error)
	Delete(ctx context.Context, leadID string) error
	Qualify(ctx context.Context, leadID string) (*Lead, error)
	// Convert turns a qualified lead into an opportunity. The response is
	// returned raw because servers report conversion results in different
	// shapes depending on downstream automation.
	Convert(ctx context.Context, leadID string, opportunityData map[string]any) (map[string]any, error)
}

// OpportunitiesClient manages sales opportunities.
type OpportunitiesClient interface {
	List(ctx context.Context, opts *ListOptions) (*ListResponse[Opportunity], error)
	Get(ctx context.Context, opportunityID string) (*Opportunity, error)
	Create(ctx context.Context, request *OpportunityCreateRequest) (*Opportunity, error)
	Win(ctx context.Context, opportunityID, reason string) (*Opportunity, error)
	Lose(ctx context.Context, opportunityID, reason string) (*Opportunity, error)
}

// DealsClient provides read access to closed deals.
type DealsClient interface {
	List(ctx context.Context, opts *ListOptions) (*ListResponse[Deal], error)
	Get(ctx context.Context, dealID string) (*Deal, error)
}

// PipelinesClient provides read access to sales pipelines.
type PipelinesClient interface {
	List(ctx context.Context) ([]Pipeline, error)
	Get(ctx context.Context, pipelineID string) (*Pipeline, error)
}

// Logger is the structured logging interface used across the SDK.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration.
//
// Exactly one of APIKey or AccessToken should normally be provided; when
// both are set the API key wins for the auth header. With neither set,
// requests are sent unauthenticated until Auth().Login succeeds.
type Config struct {
	// BaseURL is the base URL of the CRM API, e.g. "https://api.crmplatform.my".
	// Constructors normalize it by trimming a trailing slash and adding
	// "https://" when no scheme is present.
	BaseURL string

	// APIKey authenticates via the X-API-Key header.
	APIKey string
	// AccessToken is a pre-existing bearer token.
	AccessToken string
	// TenantID scopes requests via the X-Tenant-ID header.
	TenantID string

	// Timeout is the per-request timeout. Zero means the default (30s).
	Timeout time.Duration
	// DisableAutoRefresh turns off the pre-flight token refresh that
	// otherwise runs when a stored token is within five minutes of expiry.
	DisableAutoRefresh bool

	// RetryMax enables transport-level retries for 5xx/429/connection
	// failures when > 0. The default of 0 performs no retries: retry
	// policy belongs to the caller.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables request/response logging through Logger.
	Debug bool
	// Logger receives structured log output when set.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Cache enables read-through caching of GET responses.
	Cache *CacheConfig
	// CacheTTL bounds how long cached GET responses are served. Zero
	// means the cache backend's default TTL.
	CacheTTL time.Duration

	// Interceptors is an optional chain run around every request.
	Interceptors *InterceptorChain
}
