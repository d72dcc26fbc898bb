package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmplatform-io/crm/internal/client"
	"github.com/crmplatform-io/crm/pkg/crm"
)

func TestOpportunitiesClient_List(t *testing.T) {
	t.Parallel()

	client.RunListTests(t, []client.TestListOperation[crm.Opportunity]{
		{
			Name:         "by pipeline",
			Opts:         &crm.ListOptions{PipelineID: "pipe-1"},
			ExpectedPath: "/api/v1/opportunities",
			Response: map[string]interface{}{
				"data": []crm.Opportunity{
					{Name: "Globex expansion", PipelineID: "pipe-1"},
				},
				"total": 1,
			},
			WantCount: 1,
		},
	}, func(c *client.Client) func(context.Context, *crm.ListOptions) (*crm.ListResponse[crm.Opportunity], error) {
		return c.Opportunities().List
	})
}

func TestOpportunitiesClient_Get(t *testing.T) {
	t.Parallel()

	client.RunGetTests(t, []client.TestGetOperation[crm.Opportunity]{
		{
			Name:         "found",
			ID:           "opp-1",
			ExpectedPath: "/api/v1/opportunities/opp-1",
			StatusCode:   http.StatusOK,
			Response: crm.Opportunity{
				Name:   "Globex expansion",
				Status: crm.OpportunityStatusOpen,
				Value:  crm.Money{Amount: 250000, Currency: "USD"},
			},
		},
	}, func(c *client.Client) func(context.Context, string) (*crm.Opportunity, error) {
		return c.Opportunities().Get
	})
}

func TestOpportunitiesClient_Create(t *testing.T) {
	t.Parallel()

	client.RunCreateTests(t, []client.TestCreateOperation[crm.OpportunityCreateRequest, crm.Opportunity]{
		{
			Name: "successful create",
			Request: &crm.OpportunityCreateRequest{
				CustomerID:  "cust-1",
				PipelineID:  "pipe-1",
				StageID:     "stage-1",
				Name:        "Globex expansion",
				ValueAmount: 250000,
			},
			ExpectedPath: "/api/v1/opportunities",
			StatusCode:   http.StatusCreated,
			Response:     crm.Opportunity{Name: "Globex expansion"},
		},
	}, func(c *client.Client) func(context.Context, *crm.OpportunityCreateRequest) (*crm.Opportunity, error) {
		return c.Opportunities().Create
	})
}

func TestOpportunitiesClient_Win(t *testing.T) {
	t.Parallel()

	t.Run("with reason", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/opportunities/opp-1/win", request.URL.Path)
			assert.Equal(t, "POST", request.Method)

			var body map[string]string
			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "signed annual contract", body["reason"])

			_ = json.NewEncoder(writer).Encode(crm.Opportunity{Status: crm.OpportunityStatusWon})
		}))
		defer server.Close()

		c := client.NewTestClient(t, server.URL)

		opp, err := c.Opportunities().Win(context.Background(), "opp-1", "signed annual contract")
		require.NoError(t, err)
		assert.Equal(t, crm.OpportunityStatusWon, opp.Status)
	})

	t.Run("without reason sends no body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			body, err := io.ReadAll(request.Body)
			require.NoError(t, err)
			assert.Empty(t, body)

			_ = json.NewEncoder(writer).Encode(crm.Opportunity{Status: crm.OpportunityStatusWon})
		}))
		defer server.Close()

		c := client.NewTestClient(t, server.URL)

		opp, err := c.Opportunities().Win(context.Background(), "opp-1", "")
		require.NoError(t, err)
		assert.Equal(t, crm.OpportunityStatusWon, opp.Status)
	})
}

func TestOpportunitiesClient_Lose(t *testing.T) {
	t.Parallel()

	t.Run("with reason", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/opportunities/opp-1/lose", request.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "competitor undercut", body["reason"])

			_ = json.NewEncoder(writer).Encode(crm.Opportunity{
				Status:     crm.OpportunityStatusLost,
				LostReason: "competitor undercut",
			})
		}))
		defer server.Close()

		c := client.NewTestClient(t, server.URL)

		opp, err := c.Opportunities().Lose(context.Background(), "opp-1", "competitor undercut")
		require.NoError(t, err)
		assert.Equal(t, crm.OpportunityStatusLost, opp.Status)
	})

	t.Run("reason required", func(t *testing.T) {
		t.Parallel()

		c := client.NewTestClient(t, "https://api.example.com")

		opp, err := c.Opportunities().Lose(context.Background(), "opp-1", "")
		require.ErrorIs(t, err, crm.ErrReasonRequired)
		assert.Nil(t, opp)
	})
}
