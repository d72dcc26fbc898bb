package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crmplatform-io/crm/internal/http"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// LeadsClient implements crm.LeadsClient.
type LeadsClient struct {
	httpClient *http.Client
}

// NewLeadsClient creates a new leads client.
func NewLeadsClient(httpClient *http.Client) *LeadsClient {
	return &LeadsClient{httpClient: httpClient}
}

// List implements crm.LeadsClient.List.
func (c *LeadsClient) List(ctx context.Context, opts *crm.ListOptions) (*crm.ListResponse[crm.Lead], error) {
	opts = opts.Normalized()

	resp, err := c.httpClient.Get(ctx, "/api/v1/leads", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}

	return decodeListResponse[crm.Lead](resp.Body, opts, "leads")
}

// Get implements crm.LeadsClient.Get.
func (c *LeadsClient) Get(ctx context.Context, leadID string) (*crm.Lead, error) {
	path := fmt.Sprintf("/api/v1/leads/%s", leadID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting lead: %w", err)
	}

	var lead crm.Lead
	if err := json.Unmarshal(resp.Body, &lead); err != nil {
		return nil, fmt.Errorf("parsing lead response: %w", err)
	}

	return &lead, nil
}

// Create implements crm.LeadsClient.Create.
func (c *LeadsClient) Create(ctx context.Context, request *crm.LeadCreateRequest) (*crm.Lead, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/leads", request)
	if err != nil {
		return nil, fmt.Errorf("creating lead: %w", err)
	}

	var lead crm.Lead
	if err := json.Unmarshal(resp.Body, &lead); err != nil {
		return nil, fmt.Errorf("parsing lead response: %w", err)
	}

	return &lead, nil
}

// Update implements crm.LeadsClient.Update.
func (c *LeadsClient) Update(ctx context.Context, leadID string, request *crm.LeadUpdateRequest) (*crm.Lead, error) {
	path := fmt.Sprintf("/api/v1/leads/%s", leadID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating lead: %w", err)
	}

	var lead crm.Lead
	if err := json.Unmarshal(resp.Body, &lead); err != nil {
		return nil, fmt.Errorf("parsing lead response: %w", err)
	}

	return &lead, nil
}

// Delete implements crm.LeadsClient.Delete.
func (c *LeadsClient) Delete(ctx context.Context, leadID string) error {
	path := fmt.Sprintf("/api/v1/leads/%s", leadID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting lead: %w", err)
	}

	return nil
}

// Qualify implements crm.LeadsClient.Qualify.
func (c *LeadsClient) Qualify(ctx context.Context, leadID string) (*crm.Lead, error) {
	path := fmt.Sprintf("/api/v1/leads/%s/qualify", leadID)

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("qualifying lead: %w", err)
	}

	var lead crm.Lead
	if err := json.Unmarshal(resp.Body, &lead); err != nil {
		return nil, fmt.Errorf("parsing lead response: %w", err)
	}

	return &lead, nil
}

// Convert implements crm.LeadsClient.Convert. The response shape depends
// on server-side conversion automation, so it is returned undecoded.
func (c *LeadsClient) Convert(ctx context.Context, leadID string, opportunityData map[string]any) (map[string]any, error) {
	path := fmt.Sprintf("/api/v1/leads/%s/convert", leadID)

	resp, err := c.httpClient.Post(ctx, path, opportunityData)
	if err != nil {
		return nil, fmt.Errorf("converting lead: %w", err)
	}

	var result map[string]any
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing conversion response: %w", err)
	}

	return result, nil
}
