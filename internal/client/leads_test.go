package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmplatform-io/crm/internal/client"
	"github.com/crmplatform-io/crm/pkg/crm"
)

func TestLeadsClient_List(t *testing.T) {
	t.Parallel()

	client.RunListTests(t, []client.TestListOperation[crm.Lead]{
		{
			Name:         "by status",
			Opts:         &crm.ListOptions{Status: crm.LeadStatusQualified},
			ExpectedPath: "/api/v1/leads",
			Response: map[string]interface{}{
				"data": []crm.Lead{
					{CompanyName: "Globex", Status: crm.LeadStatusQualified},
				},
				"total": 1,
			},
			WantCount: 1,
		},
	}, func(c *client.Client) func(context.Context, *crm.ListOptions) (*crm.ListResponse[crm.Lead], error) {
		return c.Leads().List
	})
}

func TestLeadsClient_Get(t *testing.T) {
	t.Parallel()

	client.RunGetTests(t, []client.TestGetOperation[crm.Lead]{
		{
			Name:         "found",
			ID:           "lead-1",
			ExpectedPath: "/api/v1/leads/lead-1",
			StatusCode:   http.StatusOK,
			Response:     crm.Lead{CompanyName: "Globex", Status: crm.LeadStatusNew},
		},
		{
			Name:         "not found",
			ID:           "missing",
			ExpectedPath: "/api/v1/leads/missing",
			StatusCode:   http.StatusNotFound,
			Response:     map[string]string{"message": "Lead not found", "code": "LEAD_NOT_FOUND"},
			WantErr:      true,
			ErrMessage:   "Lead not found",
		},
	}, func(c *client.Client) func(context.Context, string) (*crm.Lead, error) {
		return c.Leads().Get
	})
}

func TestLeadsClient_Create(t *testing.T) {
	t.Parallel()

	client.RunCreateTests(t, []client.TestCreateOperation[crm.LeadCreateRequest, crm.Lead]{
		{
			Name: "successful create",
			Request: &crm.LeadCreateRequest{
				CompanyName:  "Globex",
				ContactEmail: "buyer@globex.example",
				Source:       "webinar",
			},
			ExpectedPath: "/api/v1/leads",
			StatusCode:   http.StatusCreated,
			Response:     crm.Lead{CompanyName: "Globex", Status: crm.LeadStatusNew},
		},
	}, func(c *client.Client) func(context.Context, *crm.LeadCreateRequest) (*crm.Lead, error) {
		return c.Leads().Create
	})
}

func TestLeadsClient_Update(t *testing.T) {
	t.Parallel()

	client.RunUpdateTests(t, []client.TestUpdateOperation[crm.LeadUpdateRequest, crm.Lead]{
		{
			Name:         "reassign",
			ID:           "lead-1",
			Request:      &crm.LeadUpdateRequest{AssignedTo: client.StringPtr("user-2")},
			ExpectedPath: "/api/v1/leads/lead-1",
			StatusCode:   http.StatusOK,
			Response:     crm.Lead{CompanyName: "Globex", AssignedTo: "user-2"},
		},
	}, func(c *client.Client) func(context.Context, string, *crm.LeadUpdateRequest) (*crm.Lead, error) {
		return c.Leads().Update
	})
}

func TestLeadsClient_Delete(t *testing.T) {
	t.Parallel()

	client.RunDeleteTests(t, []client.TestDeleteOperation{
		{
			Name:         "successful delete",
			ID:           "lead-1",
			ExpectedPath: "/api/v1/leads/lead-1",
			StatusCode:   http.StatusNoContent,
		},
	}, func(c *client.Client) func(context.Context, string) error {
		return c.Leads().Delete
	})
}

func TestLeadsClient_Qualify(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/leads/lead-1/qualify", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		_ = json.NewEncoder(writer).Encode(crm.Lead{
			CompanyName: "Globex",
			Status:      crm.LeadStatusQualified,
		})
	}))
	defer server.Close()

	c := client.NewTestClient(t, server.URL)

	lead, err := c.Leads().Qualify(context.Background(), "lead-1")
	require.NoError(t, err)
	assert.Equal(t, crm.LeadStatusQualified, lead.Status)
}

func TestLeadsClient_Convert(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/leads/lead-1/convert", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "Globex expansion", body["opportunity_name"])

		_ = json.NewEncoder(writer).Encode(map[string]any{
			"lead_id":        "lead-1",
			"opportunity_id": "opp-9",
			"status":         "converted",
		})
	}))
	defer server.Close()

	c := client.NewTestClient(t, server.URL)

	result, err := c.Leads().Convert(context.Background(), "lead-1", map[string]any{
		"opportunity_name": "Globex expansion",
	})
	require.NoError(t, err)
	assert.Equal(t, "opp-9", result["opportunity_id"])
}
