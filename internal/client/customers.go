package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/crmplatform-io/crm/internal/constants"
	"github.com/crmplatform-io/crm/internal/http"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// CustomersClient implements crm.CustomersClient.
type CustomersClient struct {
	httpClient *http.Client
}

// NewCustomersClient creates a new customers client.
func NewCustomersClient(httpClient *http.Client) *CustomersClient {
	return &CustomersClient{httpClient: httpClient}
}

// List implements crm.CustomersClient.List.
func (c *CustomersClient) List(ctx context.Context, opts *crm.ListOptions) (*crm.ListResponse[crm.Customer], error) {
	opts = opts.Normalized()

	resp, err := c.httpClient.Get(ctx, "/api/v1/customers", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	return decodeListResponse[crm.Customer](resp.Body, opts, "customers")
}

// Get implements crm.CustomersClient.Get.
func (c *CustomersClient) Get(ctx context.Context, customerID string) (*crm.Customer, error) {
	path := fmt.Sprintf("/api/v1/customers/%s", customerID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting customer: %w", err)
	}

	var customer crm.Customer
	if err := json.Unmarshal(resp.Body, &customer); err != nil {
		return nil, fmt.Errorf("parsing customer response: %w", err)
	}

	return &customer, nil
}

// Create implements crm.CustomersClient.Create.
func (c *CustomersClient) Create(ctx context.Context, request *crm.CustomerCreateRequest) (*crm.Customer, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/customers", request)
	if err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}

	var customer crm.Customer
	if err := json.Unmarshal(resp.Body, &customer); err != nil {
		return nil, fmt.Errorf("parsing customer response: %w", err)
	}

	return &customer, nil
}

// Update implements crm.CustomersClient.Update.
func (c *CustomersClient) Update(ctx context.Context, customerID string, request *crm.CustomerUpdateRequest) (*crm.Customer, error) {
	path := fmt.Sprintf("/api/v1/customers/%s", customerID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating customer: %w", err)
	}

	var customer crm.Customer
	if err := json.Unmarshal(resp.Body, &customer); err != nil {
		return nil, fmt.Errorf("parsing customer response: %w", err)
	}

	return &customer, nil
}

// Delete implements crm.CustomersClient.Delete.
func (c *CustomersClient) Delete(ctx context.Context, customerID string) error {
	path := fmt.Sprintf("/api/v1/customers/%s", customerID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	return nil
}

// Search implements crm.CustomersClient.Search.
func (c *CustomersClient) Search(ctx context.Context, query string, limit int) ([]crm.Customer, error) {
	if limit <= 0 {
		limit = constants.DefaultSearchLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	resp, err := c.httpClient.Get(ctx, "/api/v1/customers/search", params)
	if err != nil {
		return nil, fmt.Errorf("searching customers: %w", err)
	}

	return decodeDataArray[crm.Customer](resp.Body, "customer search")
}
