package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmplatform-io/crm/internal/client"
	"github.com/crmplatform-io/crm/pkg/crm"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		c, err := client.New(nil)
		require.ErrorIs(t, err, crm.ErrConfigRequired)
		assert.Nil(t, c)
	})

	t.Run("missing base URL", func(t *testing.T) {
		t.Parallel()

		c, err := client.New(&crm.Config{})
		require.ErrorIs(t, err, crm.ErrBaseURLRequired)
		assert.Nil(t, c)
	})

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		c, err := client.New(&crm.Config{
			BaseURL: "https://api.example.com",
			APIKey:  "test-key",
		})
		require.NoError(t, err)
		require.NotNil(t, c)
	})
}

func TestClient_ResourceAccessors(t *testing.T) {
	t.Parallel()

	c, err := client.New(&crm.Config{BaseURL: "https://api.example.com"})
	require.NoError(t, err)

	assert.NotNil(t, c.Auth())
	assert.NotNil(t, c.Users())
	assert.NotNil(t, c.Tenants())
	assert.NotNil(t, c.Customers())
	assert.NotNil(t, c.Contacts())
	assert.NotNil(t, c.Leads())
	assert.NotNil(t, c.Opportunities())
	assert.NotNil(t, c.Deals())
	assert.NotNil(t, c.Pipelines())
}

func TestClient_LoginThenRequest(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/v1/auth/login":
			assert.Equal(t, "POST", request.Method)

			var body map[string]string
			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "alice@example.com", body["email"])
			assert.Equal(t, "tenant-1", body["tenant_id"])

			_ = json.NewEncoder(writer).Encode(crm.LoginResponse{
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
				TokenType:    "Bearer",
				ExpiresIn:    3600,
				User:         crm.UserInfo{ID: "user-1", Email: "alice@example.com"},
			})
		case "/api/v1/auth/refresh":
			refreshCalls.Add(1)
			writer.WriteHeader(http.StatusOK)
		case "/api/v1/auth/me":
			assert.Equal(t, "Bearer access-token", request.Header.Get("Authorization"))
			assert.Equal(t, "tenant-1", request.Header.Get("X-Tenant-ID"))

			_ = json.NewEncoder(writer).Encode(crm.User{Email: "alice@example.com"})
		default:
			t.Errorf("unexpected path %s", request.URL.Path)
		}
	}))
	defer server.Close()

	c, err := client.New(&crm.Config{BaseURL: server.URL, TenantID: "tenant-1"})
	require.NoError(t, err)

	login, err := c.Auth().Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "access-token", login.AccessToken)
	assert.Equal(t, "user-1", login.User.ID)

	user, err := c.Auth().Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	// Freshly issued tokens are nowhere near expiry.
	assert.Equal(t, int32(0), refreshCalls.Load())
}

func TestClient_LogoutClearsSessionOnServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(writer).Encode(map[string]string{"message": "boom"})
	}))
	defer server.Close()

	c, err := client.New(&crm.Config{BaseURL: server.URL, AccessToken: "stale-token"})
	require.NoError(t, err)

	require.True(t, c.Session().Authenticated())

	err = c.Auth().Logout(context.Background())
	require.Error(t, err)

	// The local session is cleared even though the server call failed.
	assert.False(t, c.Session().Authenticated())
	assert.Empty(t, c.Session().AccessToken())
}

func TestClient_PaginationContract(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/customers", request.URL.Path)
		assert.Equal(t, "2", request.URL.Query().Get("page"))
		assert.Equal(t, "10", request.URL.Query().Get("per_page"))

		// The server reports totals but not the requested page.
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"data":        make([]crm.Customer, 8),
			"total":       18,
			"total_pages": 2,
		})
	}))
	defer server.Close()

	c, err := client.New(&crm.Config{BaseURL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)

	result, err := c.Customers().List(context.Background(), &crm.ListOptions{Page: 2, PerPage: 10})
	require.NoError(t, err)

	assert.Len(t, result.Data, 8)
	assert.Equal(t, 18, result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.PerPage)
	assert.Equal(t, 2, result.TotalPages)
	assert.False(t, result.HasNext())
	assert.True(t, result.HasPrev())
}

func TestClient_TotalPagesDefaultsToOne(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"data":  make([]crm.Lead, 3),
			"total": 3,
		})
	}))
	defer server.Close()

	c, err := client.New(&crm.Config{BaseURL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)

	result, err := c.Leads().List(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, crm.DefaultPage, result.Page)
	assert.Equal(t, crm.DefaultPerPage, result.PerPage)
	assert.Equal(t, 1, result.TotalPages)
	assert.False(t, result.HasNext())
	assert.False(t, result.HasPrev())
}

func TestClient_AutoRefreshBeforeRequest(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/v1/auth/refresh":
			refreshCalls.Add(1)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"access_token":  "fresh-token",
				"refresh_token": "fresh-refresh",
				"expires_in":    3600,
			})
		case "/api/v1/auth/me":
			assert.Equal(t, "Bearer fresh-token", request.Header.Get("Authorization"))
			_ = json.NewEncoder(writer).Encode(crm.User{Email: "alice@example.com"})
		default:
			t.Errorf("unexpected path %s", request.URL.Path)
		}
	}))
	defer server.Close()

	c, err := client.New(&crm.Config{BaseURL: server.URL, AccessToken: "stale-token"})
	require.NoError(t, err)

	// Hand the session a token that is about to expire along with a
	// refresh token it can trade in.
	c.Session().SetTokens("stale-token", "old-refresh", time.Now().Add(time.Minute))

	user, err := c.Auth().Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, int32(1), refreshCalls.Load())
}
