package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crmplatform-io/crm/internal/http"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// ContactsClient implements crm.ContactsClient. Contacts are nested under
// their owning customer.
type ContactsClient struct {
	httpClient *http.Client
}

// NewContactsClient creates a new contacts client.
func NewContactsClient(httpClient *http.Client) *ContactsClient {
	return &ContactsClient{httpClient: httpClient}
}

// List implements crm.ContactsClient.List.
func (c *ContactsClient) List(ctx context.Context, customerID string) ([]crm.Contact, error) {
	if customerID == "" {
		return nil, crm.ErrCustomerIDRequired
	}

	path := fmt.Sprintf("/api/v1/customers/%s/contacts", customerID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}

	return decodeDataArray[crm.Contact](resp.Body, "contacts")
}

// Get implements crm.ContactsClient.Get.
func (c *ContactsClient) Get(ctx context.Context, customerID, contactID string) (*crm.Contact, error) {
	if customerID == "" {
		return nil, crm.ErrCustomerIDRequired
	}

	path := fmt.Sprintf("/api/v1/customers/%s/contacts/%s", customerID, contactID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting contact: %w", err)
	}

	var contact crm.Contact
	if err := json.Unmarshal(resp.Body, &contact); err != nil {
		return nil, fmt.Errorf("parsing contact response: %w", err)
	}

	return &contact, nil
}

// Create implements crm.ContactsClient.Create.
func (c *ContactsClient) Create(ctx context.Context, customerID string, request *crm.ContactCreateRequest) (*crm.Contact, error) {
	if customerID == "" {
		return nil, crm.ErrCustomerIDRequired
	}

	path := fmt.Sprintf("/api/v1/customers/%s/contacts", customerID)

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	var contact crm.Contact
	if err := json.Unmarshal(resp.Body, &contact); err != nil {
		return nil, fmt.Errorf("parsing contact response: %w", err)
	}

	return &contact, nil
}

// Delete implements crm.ContactsClient.Delete.
func (c *ContactsClient) Delete(ctx context.Context, customerID, contactID string) error {
	if customerID == "" {
		return crm.ErrCustomerIDRequired
	}

	path := fmt.Sprintf("/api/v1/customers/%s/contacts/%s", customerID, contactID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	return nil
}
