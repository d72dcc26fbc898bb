package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crmplatform-io/crm/internal/http"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// DealsClient implements crm.DealsClient. Deals are created server-side
// when opportunities close, so the client surface is read-only.
type DealsClient struct {
	httpClient *http.Client
}

// NewDealsClient creates a new deals client.
func NewDealsClient(httpClient *http.Client) *DealsClient {
	return &DealsClient{httpClient: httpClient}
}

// List implements crm.DealsClient.List.
func (c *DealsClient) List(ctx context.Context, opts *crm.ListOptions) (*crm.ListResponse[crm.Deal], error) {
	opts = opts.Normalized()

	resp, err := c.httpClient.Get(ctx, "/api/v1/deals", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}

	return decodeListResponse[crm.Deal](resp.Body, opts, "deals")
}

// Get implements crm.DealsClient.Get.
func (c *DealsClient) Get(ctx context.Context, dealID string) (*crm.Deal, error) {
	path := fmt.Sprintf("/api/v1/deals/%s", dealID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting deal: %w", err)
	}

	var deal crm.Deal
	if err := json.Unmarshal(resp.Body, &deal); err != nil {
		return nil, fmt.Errorf("parsing deal response: %w", err)
	}

	return &deal, nil
}
