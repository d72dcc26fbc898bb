package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/crmplatform-io/crm/internal/client"
	"github.com/crmplatform-io/crm/pkg/crm"
)

func TestTenantsClient_List(t *testing.T) {
	t.Parallel()

	client.RunListTests(t, []client.TestListOperation[crm.Tenant]{
		{
			Name:         "two tenants",
			ExpectedPath: "/api/v1/tenants",
			Response: map[string]interface{}{
				"data": []crm.Tenant{
					{Name: "Acme", Slug: "acme"},
					{Name: "Globex", Slug: "globex"},
				},
				"total": 2,
			},
			WantCount: 2,
		},
	}, func(c *client.Client) func(context.Context, *crm.ListOptions) (*crm.ListResponse[crm.Tenant], error) {
		return c.Tenants().List
	})
}

func TestTenantsClient_Get(t *testing.T) {
	t.Parallel()

	client.RunGetTests(t, []client.TestGetOperation[crm.Tenant]{
		{
			Name:         "found",
			ID:           "tenant-1",
			ExpectedPath: "/api/v1/tenants/tenant-1",
			StatusCode:   http.StatusOK,
			Response:     crm.Tenant{Name: "Acme", Slug: "acme", Plan: "pro"},
		},
		{
			Name:         "forbidden",
			ID:           "other-tenant",
			ExpectedPath: "/api/v1/tenants/other-tenant",
			StatusCode:   http.StatusForbidden,
			Response:     map[string]string{"message": "Access denied", "code": "FORBIDDEN"},
			WantErr:      true,
			ErrMessage:   "Access denied",
		},
	}, func(c *client.Client) func(context.Context, string) (*crm.Tenant, error) {
		return c.Tenants().Get
	})
}

func TestTenantsClient_Create(t *testing.T) {
	t.Parallel()

	client.RunCreateTests(t, []client.TestCreateOperation[crm.TenantCreateRequest, crm.Tenant]{
		{
			Name: "successful create",
			Request: &crm.TenantCreateRequest{
				Name: "Initech",
				Slug: "initech",
				Plan: "starter",
			},
			ExpectedPath: "/api/v1/tenants",
			StatusCode:   http.StatusCreated,
			Response:     crm.Tenant{Name: "Initech", Slug: "initech"},
		},
		{
			Name:         "slug taken",
			Request:      &crm.TenantCreateRequest{Name: "Initech", Slug: "acme"},
			ExpectedPath: "/api/v1/tenants",
			StatusCode:   http.StatusConflict,
			Response:     map[string]string{"message": "Slug already in use", "code": "SLUG_TAKEN"},
			WantErr:      true,
			ErrMessage:   "Slug already in use",
		},
	}, func(c *client.Client) func(context.Context, *crm.TenantCreateRequest) (*crm.Tenant, error) {
		return c.Tenants().Create
	})
}
