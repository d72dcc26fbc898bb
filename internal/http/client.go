// Package http funnels every API request through one dispatcher that
// applies credentials, retries, caching, and error classification.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/crmplatform-io/crm/internal/constants"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// CredentialSource supplies headers and keeps tokens fresh. It is
// implemented by the auth session machinery.
type CredentialSource interface {
	EnsureFresh(ctx context.Context) error
	ApplyHeaders(headers nethttp.Header)
}

// Request describes one API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is the decoded-agnostic result of a call.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Client dispatches requests against the API base URL.
type Client struct {
	baseURL      string
	credentials  CredentialSource
	httpClient   *retryablehttp.Client
	logger       crm.Logger
	debug        bool
	userAgent    string
	timeout      time.Duration
	interceptors *crm.InterceptorChain
	cacheManager *crm.CacheManager
	cachePolicy  *crm.CachingPolicy
	cacheTTL     time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger crm.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetryConfig tunes the retry behavior.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithInterceptors installs a request/response interceptor chain.
func WithInterceptors(chain *crm.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithCache enables read-through caching of GET responses.
func WithCache(cache crm.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		if ttl <= 0 {
			ttl = constants.DefaultCacheTTL
		}

		c.cacheManager = crm.NewCacheManager(cache, nil)
		c.cachePolicy = crm.DefaultCachingPolicy()
		c.cacheTTL = ttl
	}
}

// NewClient creates a dispatcher for baseURL. credentials may be nil for
// unauthenticated use.
func NewClient(baseURL string, credentials CredentialSource, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		credentials: credentials,
		httpClient:  retryClient,
		timeout:     constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.httpClient.HTTPClient.Timeout = client.timeout

	return client
}

// Do performs a single API request.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.credentials != nil {
		err := c.credentials.EnsureFresh(ctx)
		if err != nil {
			return nil, err
		}
	}

	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var (
		bodyBytes []byte
		err       error
	)

	if req.Body != nil {
		bodyBytes, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	cacheKey, cached := c.fromCache(ctx, req)
	if cached != nil {
		return cached, nil
	}

	headers := c.buildHeaders(req)

	intReq := &crm.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: headers,
		Body:    bodyBytes,
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, intReq)
		if err != nil {
			return nil, err
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	var rawBody interface{}
	if bodyBytes != nil {
		rawBody = bodyBytes
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header = intReq.Headers

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.classifyTransportError(ctx, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, crm.NewNetworkError(err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
		})
	}

	var respErr error
	if resp.StatusCode >= 400 {
		respErr = crm.ClassifyResponse(resp.StatusCode, respBody)
	}

	if c.interceptors != nil {
		intErr := c.interceptors.ExecuteResponseInterceptors(ctx, intReq, &crm.Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       respBody,
			Error:      respErr,
		})
		if intErr != nil {
			return resp, intErr
		}
	}

	if respErr != nil {
		return resp, respErr
	}

	c.storeInCache(ctx, req, cacheKey, resp)

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request. Any response body is discarded by
// callers that treat deletion as void.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path})
}

// buildHeaders assembles the header set for one request.
func (c *Client) buildHeaders(req *Request) nethttp.Header {
	headers := make(nethttp.Header)

	if c.credentials != nil {
		c.credentials.ApplyHeaders(headers)
	} else {
		headers.Set("Content-Type", "application/json")
		headers.Set("Accept", "application/json")
	}

	if c.userAgent != "" {
		headers.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	return headers
}

// classifyTransportError maps transport failures onto the error taxonomy.
func (c *Client) classifyTransportError(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return crm.NewTimeoutError(c.timeout, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return crm.NewTimeoutError(c.timeout, err)
	}

	return crm.NewNetworkError(err)
}

// fromCache returns the cache key for req and any fresh cached response.
func (c *Client) fromCache(ctx context.Context, req *Request) (string, *Response) {
	if c.cacheManager == nil || !c.cachePolicy.ShouldCache(req.Method, req.Path, nethttp.StatusOK) {
		return "", nil
	}

	params := make(map[string]string, len(req.Query))
	for key := range req.Query {
		params[key] = req.Query.Get(key)
	}

	key := c.cacheManager.GetCacheKey(req.Method, req.Path, params)

	data, err := c.cacheManager.Get(ctx, key)
	if err != nil {
		return key, nil
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("cache hit", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})
	}

	return key, &Response{
		StatusCode: nethttp.StatusOK,
		Headers:    make(nethttp.Header),
		Body:       data,
	}
}

// storeInCache saves a successful response when the policy allows it.
func (c *Client) storeInCache(ctx context.Context, req *Request, key string, resp *Response) {
	if c.cacheManager == nil || key == "" {
		return
	}

	if !c.cachePolicy.ShouldCache(req.Method, req.Path, resp.StatusCode) {
		return
	}

	_ = c.cacheManager.SetWithETag(ctx, key, resp.Body, resp.Headers.Get("ETag"), c.cacheTTL)
}
