package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crmplatform-io/crm/internal/http"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// TenantsClient implements crm.TenantsClient.
type TenantsClient struct {
	httpClient *http.Client
}

// NewTenantsClient creates a new tenants client.
func NewTenantsClient(httpClient *http.Client) *TenantsClient {
	return &TenantsClient{httpClient: httpClient}
}

// List implements crm.TenantsClient.List.
func (c *TenantsClient) List(ctx context.Context, opts *crm.ListOptions) (*crm.ListResponse[crm.Tenant], error) {
	opts = opts.Normalized()

	resp, err := c.httpClient.Get(ctx, "/api/v1/tenants", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}

	return decodeListResponse[crm.Tenant](resp.Body, opts, "tenants")
}

// Get implements crm.TenantsClient.Get.
func (c *TenantsClient) Get(ctx context.Context, tenantID string) (*crm.Tenant, error) {
	path := fmt.Sprintf("/api/v1/tenants/%s", tenantID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting tenant: %w", err)
	}

	var tenant crm.Tenant
	if err := json.Unmarshal(resp.Body, &tenant); err != nil {
		return nil, fmt.Errorf("parsing tenant response: %w", err)
	}

	return &tenant, nil
}

// Create implements crm.TenantsClient.Create.
func (c *TenantsClient) Create(ctx context.Context, request *crm.TenantCreateRequest) (*crm.Tenant, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/tenants", request)
	if err != nil {
		return nil, fmt.Errorf("creating tenant: %w", err)
	}

	var tenant crm.Tenant
	if err := json.Unmarshal(resp.Body, &tenant); err != nil {
		return nil, fmt.Errorf("parsing tenant response: %w", err)
	}

	return &tenant, nil
}
