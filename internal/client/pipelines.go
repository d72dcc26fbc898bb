package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crmplatform-io/crm/internal/http"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// PipelinesClient implements crm.PipelinesClient. Pipelines are managed
// by tenant administrators out of band, so the SDK exposes them read-only.
type PipelinesClient struct {
	httpClient *http.Client
}

// NewPipelinesClient creates a new pipelines client.
func NewPipelinesClient(httpClient *http.Client) *PipelinesClient {
	return &PipelinesClient{httpClient: httpClient}
}

// List implements crm.PipelinesClient.List. The endpoint is not
// paginated; every pipeline for the tenant is returned in one call.
func (c *PipelinesClient) List(ctx context.Context) ([]crm.Pipeline, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/pipelines", nil)
	if err != nil {
		return nil, fmt.Errorf("listing pipelines: %w", err)
	}

	return decodeDataArray[crm.Pipeline](resp.Body, "pipelines")
}

// Get implements crm.PipelinesClient.Get.
func (c *PipelinesClient) Get(ctx context.Context, pipelineID string) (*crm.Pipeline, error) {
	path := fmt.Sprintf("/api/v1/pipelines/%s", pipelineID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting pipeline: %w", err)
	}

	var pipeline crm.Pipeline
	if err := json.Unmarshal(resp.Body, &pipeline); err != nil {
		return nil, fmt.Errorf("parsing pipeline response: %w", err)
	}

	return &pipeline, nil
}
