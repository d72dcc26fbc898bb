package crm_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmplatform-io/crm/pkg/crm"
)

var errInterceptorBoom = errors.New("interceptor boom")

func TestInterceptorChain_RequestOrder(t *testing.T) {
	t.Parallel()

	chain := crm.NewInterceptorChain()

	var order []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *crm.Request) error {
		order = append(order, "first")

		return nil
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *crm.Request) error {
		order = append(order, "second")

		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &crm.Request{Method: "GET", Path: "/api/v1/customers"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestInterceptorChain_RequestErrorStopsChain(t *testing.T) {
	t.Parallel()

	chain := crm.NewInterceptorChain()

	called := false

	chain.AddRequestInterceptor(func(ctx context.Context, req *crm.Request) error {
		return errInterceptorBoom
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *crm.Request) error {
		called = true

		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &crm.Request{})
	require.ErrorIs(t, err, errInterceptorBoom)
	assert.False(t, called)
}

func TestInterceptorChain_ResponseInterceptors(t *testing.T) {
	t.Parallel()

	chain := crm.NewInterceptorChain()

	var sawStatus int

	chain.AddResponseInterceptor(func(ctx context.Context, req *crm.Request, resp *crm.Response) error {
		sawStatus = resp.StatusCode

		return nil
	})

	err := chain.ExecuteResponseInterceptors(context.Background(),
		&crm.Request{Method: "GET", Path: "/api/v1/leads"},
		&crm.Response{StatusCode: http.StatusOK})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, sawStatus)
}

func TestTenantHeaderInterceptor(t *testing.T) {
	t.Parallel()

	t.Run("sets the tenant header", func(t *testing.T) {
		t.Parallel()

		interceptor := crm.TenantHeaderInterceptor("tenant-1")
		req := &crm.Request{Method: "GET", Path: "/api/v1/customers"}

		err := interceptor(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "tenant-1", req.Headers.Get("X-Tenant-ID"))
	})

	t.Run("empty tenant leaves headers alone", func(t *testing.T) {
		t.Parallel()

		interceptor := crm.TenantHeaderInterceptor("")
		req := &crm.Request{Method: "GET", Path: "/api/v1/customers"}

		err := interceptor(context.Background(), req)
		require.NoError(t, err)
		assert.Nil(t, req.Headers)
	})
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := crm.HeaderInterceptor(map[string]string{
		"X-Request-ID": "req-1",
		"X-Trace":      "trace-1",
	})
	req := &crm.Request{}

	err := interceptor(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "req-1", req.Headers.Get("X-Request-ID"))
	assert.Equal(t, "trace-1", req.Headers.Get("X-Trace"))
}

func TestRateLimitInterceptor_CancelledContext(t *testing.T) {
	t.Parallel()

	interceptor := crm.RateLimitInterceptor(1)

	// Consume the single token.
	err := interceptor(context.Background(), &crm.Request{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = interceptor(ctx, &crm.Request{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMetricsInterceptors(t *testing.T) {
	t.Parallel()

	collector := crm.NewMetricsCollector()
	reqInterceptor := crm.MetricsRequestInterceptor(collector)
	respInterceptor := crm.MetricsResponseInterceptor(collector)
	ctx := context.Background()

	req := &crm.Request{Method: "GET", Path: "/api/v1/deals"}

	require.NoError(t, reqInterceptor(ctx, req))
	require.NoError(t, respInterceptor(ctx, req, &crm.Response{StatusCode: http.StatusOK}))

	require.NoError(t, reqInterceptor(ctx, req))
	require.NoError(t, respInterceptor(ctx, req, &crm.Response{StatusCode: http.StatusInternalServerError}))

	metrics := collector.GetMetrics("GET /api/v1/deals")
	require.NotNil(t, metrics)
	assert.Equal(t, int64(2), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)
	assert.False(t, metrics.LastRequestTime.IsZero())

	assert.Nil(t, collector.GetMetrics("GET /api/v1/unknown"))
}

func TestMetricsCollector_OnChange(t *testing.T) {
	t.Parallel()

	collector := crm.NewMetricsCollector()

	var changedEndpoint string

	collector.SetOnChange(func(endpoint string, metrics *crm.Metrics) {
		changedEndpoint = endpoint
	})

	respInterceptor := crm.MetricsResponseInterceptor(collector)

	req := &crm.Request{Method: "POST", Path: "/api/v1/leads"}
	require.NoError(t, respInterceptor(context.Background(), req, &crm.Response{StatusCode: http.StatusCreated}))

	assert.Equal(t, "POST /api/v1/leads", changedEndpoint)
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	breaker := crm.NewCircuitBreaker(&crm.CircuitBreakerConfig{
		Threshold:        2,
		Timeout:          time.Minute,
		SuccessThreshold: 1,
	})
	reqInterceptor := crm.CircuitBreakerRequestInterceptor(breaker)
	respInterceptor := crm.CircuitBreakerResponseInterceptor(breaker)
	ctx := context.Background()

	req := &crm.Request{Method: "GET", Path: "/api/v1/customers"}
	failure := &crm.Response{StatusCode: http.StatusInternalServerError}

	// Below the threshold the breaker stays closed.
	require.NoError(t, respInterceptor(ctx, req, failure))
	require.NoError(t, reqInterceptor(ctx, req))

	// The second failure trips it.
	require.NoError(t, respInterceptor(ctx, req, failure))

	err := reqInterceptor(ctx, req)
	require.ErrorIs(t, err, crm.ErrCircuitBreakerOpen)
}

func TestCircuitBreaker_RecoversAfterTimeout(t *testing.T) {
	t.Parallel()

	breaker := crm.NewCircuitBreaker(&crm.CircuitBreakerConfig{
		Threshold:        1,
		Timeout:          10 * time.Millisecond,
		SuccessThreshold: 1,
	})
	reqInterceptor := crm.CircuitBreakerRequestInterceptor(breaker)
	respInterceptor := crm.CircuitBreakerResponseInterceptor(breaker)
	ctx := context.Background()

	req := &crm.Request{Method: "GET", Path: "/api/v1/customers"}

	require.NoError(t, respInterceptor(ctx, req, &crm.Response{StatusCode: http.StatusInternalServerError}))
	require.ErrorIs(t, reqInterceptor(ctx, req), crm.ErrCircuitBreakerOpen)

	// After the timeout the breaker goes half-open and lets a probe through.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, reqInterceptor(ctx, req))

	// A success in half-open closes it again.
	require.NoError(t, respInterceptor(ctx, req, &crm.Response{StatusCode: http.StatusOK}))
	require.NoError(t, reqInterceptor(ctx, req))
}

func TestCircuitBreaker_DefaultConfig(t *testing.T) {
	t.Parallel()

	breaker := crm.NewCircuitBreaker(nil)
	reqInterceptor := crm.CircuitBreakerRequestInterceptor(breaker)

	require.NoError(t, reqInterceptor(context.Background(), &crm.Request{}))
}
