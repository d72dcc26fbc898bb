package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	crmhttp "github.com/crmplatform-io/crm/internal/http"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// MockCredentialSource for testing.
type MockCredentialSource struct {
	apiKey      string
	token       string
	tenantID    string
	refreshErr  error
	refreshCall int
}

func (m *MockCredentialSource) EnsureFresh(ctx context.Context) error {
	m.refreshCall++

	return m.refreshErr
}

func (m *MockCredentialSource) ApplyHeaders(headers http.Header) {
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")

	switch {
	case m.apiKey != "":
		headers.Set("X-API-Key", m.apiKey)
	case m.token != "":
		headers.Set("Authorization", "Bearer "+m.token)
	}

	if m.tenantID != "" {
		headers.Set("X-Tenant-ID", m.tenantID)
	}
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/customers", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			response := map[string]string{"id": "cust-1", "name": "Acme"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		creds := &MockCredentialSource{token: "test-token"}
		client := crmhttp.NewClient(server.URL, creds)

		req := &crmhttp.Request{
			Method: "GET",
			Path:   "/api/v1/customers",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 1, creds.refreshCall)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "cust-1", result["id"])
		assert.Equal(t, "Acme", result["name"])
	})

	t.Run("api key takes priority", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "secret", request.Header.Get("X-API-Key"))
			assert.Empty(t, request.Header.Get("Authorization"))
			assert.Equal(t, "tenant-1", request.Header.Get("X-Tenant-ID"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		creds := &MockCredentialSource{apiKey: "secret", token: "test-token", tenantID: "tenant-1"}
		client := crmhttp.NewClient(server.URL, creds)

		_, err := client.Get(context.Background(), "/api/v1/customers", nil)
		require.NoError(t, err)
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/customers", request.URL.Path)
			assert.Equal(t, "page=2", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := crmhttp.NewClient(server.URL, nil)

		req := &crmhttp.Request{
			Method: "GET",
			Path:   "/api/v1/customers",
			Query:  url.Values{"page": []string{"2"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "Acme", body["name"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := crmhttp.NewClient(server.URL, nil)

		req := &crmhttp.Request{
			Method: "POST",
			Path:   "/api/v1/customers",
			Body:   map[string]string{"name": "Acme"},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"error": "Customer not found",
				"code":  "CUSTOMER_NOT_FOUND",
			})
		}))
		defer server.Close()

		client := crmhttp.NewClient(server.URL, nil)

		req := &crmhttp.Request{
			Method: "GET",
			Path:   "/api/v1/customers/missing",
		}

		resp, err := client.Do(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		assert.True(t, crm.IsNotFound(err))

		var apiErr *crm.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Customer not found", apiErr.Message)
		assert.Equal(t, "CUSTOMER_NOT_FOUND", apiErr.Code)
	})

	t.Run("refresh failure aborts request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			t.Error("request should not reach server")
		}))
		defer server.Close()

		creds := &MockCredentialSource{
			token:      "test-token",
			refreshErr: crm.NewAuthenticationError("Failed to refresh token"),
		}
		client := crmhttp.NewClient(server.URL, creds)

		_, err := client.Get(context.Background(), "/api/v1/customers", nil)
		require.Error(t, err)
		assert.True(t, crm.IsAuthentication(err))
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := crmhttp.NewClient(server.URL, nil)

		req := &crmhttp.Request{
			Method: "GET",
			Path:   "/api/v1/customers",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
			},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := crmhttp.NewClient(server.URL, nil, crmhttp.WithLogger(logger), crmhttp.WithDebug(true))

		req := &crmhttp.Request{
			Method: "GET",
			Path:   "/api/v1/customers",
		}

		_, err := client.Do(context.Background(), req)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*crmhttp.Client, context.Context) (*crmhttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *crmhttp.Client, ctx context.Context) (*crmhttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *crmhttp.Client, ctx context.Context) (*crmhttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *crmhttp.Client, ctx context.Context) (*crmhttp.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PATCH",
			method: "PATCH",
			fn: func(c *crmhttp.Client, ctx context.Context) (*crmhttp.Response, error) {
				return c.Patch(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *crmhttp.Client, ctx context.Context) (*crmhttp.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := crmhttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts < 3 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := crmhttp.NewClient(server.URL, nil, crmhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 3, attempts)
	})

	t.Run("retries on rate limiting", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts < 2 {
				writer.WriteHeader(http.StatusTooManyRequests)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := crmhttp.NewClient(server.URL, nil, crmhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 2, attempts)
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++

			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := crmhttp.NewClient(server.URL, nil, crmhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, 1, attempts) // Should not retry
	})
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := crmhttp.NewClient(server.URL, nil,
		crmhttp.WithTimeout(20*time.Millisecond),
		crmhttp.WithRetryConfig(0, time.Millisecond, time.Millisecond))

	_, err := client.Get(context.Background(), "/slow", nil)
	require.Error(t, err)
	assert.True(t, crm.IsTimeout(err))
}

func TestClient_NetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	server.Close() // Connection refused from here on

	client := crmhttp.NewClient(server.URL, nil,
		crmhttp.WithRetryConfig(0, time.Millisecond, time.Millisecond))

	_, err := client.Get(context.Background(), "/test", nil)
	require.Error(t, err)
	assert.True(t, crm.IsNetwork(err))
}

func TestClient_Cache(t *testing.T) {
	t.Parallel()

	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		attempts++
		_ = json.NewEncoder(writer).Encode(map[string]string{"id": "cust-1"})
	}))
	defer server.Close()

	client := crmhttp.NewClient(server.URL, nil, crmhttp.WithCache(crm.NewMemoryCache(10), time.Minute))

	// First call hits the server
	resp, err := client.Get(context.Background(), "/api/v1/customers/cust-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)

	// Second call is served from cache
	cached, err := client.Get(context.Background(), "/api/v1/customers/cust-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, resp.Body, cached.Body)

	// Auth endpoints are never cached
	_, _ = client.Get(context.Background(), "/api/v1/auth/me", nil)
	_, _ = client.Get(context.Background(), "/api/v1/auth/me", nil)
	assert.Equal(t, 3, attempts)
}
