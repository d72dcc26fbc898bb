package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crmplatform-io/crm/internal/http"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// OpportunitiesClient implements crm.OpportunitiesClient.
type OpportunitiesClient struct {
	httpClient *http.Client
}

// NewOpportunitiesClient creates a new opportunities client.
func NewOpportunitiesClient(httpClient *http.Client) *OpportunitiesClient {
	return &OpportunitiesClient{httpClient: httpClient}
}

// List implements crm.OpportunitiesClient.List.
func (c *OpportunitiesClient) List(ctx context.Context, opts *crm.ListOptions) (*crm.ListResponse[crm.Opportunity], error) {
	opts = opts.Normalized()

	resp, err := c.httpClient.Get(ctx, "/api/v1/opportunities", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing opportunities: %w", err)
	}

	return decodeListResponse[crm.Opportunity](resp.Body, opts, "opportunities")
}

// Get implements crm.OpportunitiesClient.Get.
func (c *OpportunitiesClient) Get(ctx context.Context, opportunityID string) (*crm.Opportunity, error) {
	path := fmt.Sprintf("/api/v1/opportunities/%s", opportunityID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting opportunity: %w", err)
	}

	var opportunity crm.Opportunity
	if err := json.Unmarshal(resp.Body, &opportunity); err != nil {
		return nil, fmt.Errorf("parsing opportunity response: %w", err)
	}

	return &opportunity, nil
}

// Create implements crm.OpportunitiesClient.Create.
func (c *OpportunitiesClient) Create(ctx context.Context, request *crm.OpportunityCreateRequest) (*crm.Opportunity, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/opportunities", request)
	if err != nil {
		return nil, fmt.Errorf("creating opportunity: %w", err)
	}

	var opportunity crm.Opportunity
	if err := json.Unmarshal(resp.Body, &opportunity); err != nil {
		return nil, fmt.Errorf("parsing opportunity response: %w", err)
	}

	return &opportunity, nil
}

type closeRequest struct {
	Reason string `json:"reason"`
}

// Win implements crm.OpportunitiesClient.Win. The reason is optional.
func (c *OpportunitiesClient) Win(ctx context.Context, opportunityID, reason string) (*crm.Opportunity, error) {
	path := fmt.Sprintf("/api/v1/opportunities/%s/win", opportunityID)

	var body interface{}
	if reason != "" {
		body = &closeRequest{Reason: reason}
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("winning opportunity: %w", err)
	}

	var opportunity crm.Opportunity
	if err := json.Unmarshal(resp.Body, &opportunity); err != nil {
		return nil, fmt.Errorf("parsing opportunity response: %w", err)
	}

	return &opportunity, nil
}

// Lose implements crm.OpportunitiesClient.Lose. A reason is required.
func (c *OpportunitiesClient) Lose(ctx context.Context, opportunityID, reason string) (*crm.Opportunity, error) {
	if reason == "" {
		return nil, crm.ErrReasonRequired
	}

	path := fmt.Sprintf("/api/v1/opportunities/%s/lose", opportunityID)

	resp, err := c.httpClient.Post(ctx, path, &closeRequest{Reason: reason})
	if err != nil {
		return nil, fmt.Errorf("losing opportunity: %w", err)
	}

	var opportunity crm.Opportunity
	if err := json.Unmarshal(resp.Body, &opportunity); err != nil {
		return nil, fmt.Errorf("parsing opportunity response: %w", err)
	}

	return &opportunity, nil
}
