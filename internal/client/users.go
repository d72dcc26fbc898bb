package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crmplatform-io/crm/internal/http"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// UsersClient implements crm.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{httpClient: httpClient}
}

// List implements crm.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, opts *crm.ListOptions) (*crm.ListResponse[crm.User], error) {
	opts = opts.Normalized()

	resp, err := c.httpClient.Get(ctx, "/api/v1/users", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return decodeListResponse[crm.User](resp.Body, opts, "users")
}

// Get implements crm.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, userID string) (*crm.User, error) {
	path := fmt.Sprintf("/api/v1/users/%s", userID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	var user crm.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}

// Create implements crm.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, request *crm.UserCreateRequest) (*crm.User, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/users", request)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	var user crm.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}

// Update implements crm.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, userID string, request *crm.UserUpdateRequest) (*crm.User, error) {
	path := fmt.Sprintf("/api/v1/users/%s", userID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	var user crm.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}

// Delete implements crm.UsersClient.Delete.
func (c *UsersClient) Delete(ctx context.Context, userID string) error {
	path := fmt.Sprintf("/api/v1/users/%s", userID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return nil
}
