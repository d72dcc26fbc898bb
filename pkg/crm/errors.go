package crm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorKind is the closed set of error categories produced by the client.
// Every failure surfaced by the SDK is an *Error carrying one of these kinds.
type ErrorKind string

const (
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindAuthorization  ErrorKind = "authorization"
	ErrorKindNotFound       ErrorKind = "not_found"
	ErrorKindValidation     ErrorKind = "validation"
	ErrorKindConflict       ErrorKind = "conflict"
	ErrorKindRateLimit      ErrorKind = "rate_limit"
	ErrorKindServer         ErrorKind = "server"
	ErrorKindNetwork        ErrorKind = "network"
	ErrorKindTimeout        ErrorKind = "timeout"
	ErrorKindGeneric        ErrorKind = "generic"
)

// Default error codes used when the server omits one.
const (
	CodeAuthenticationError = "AUTHENTICATION_ERROR"
	CodeAuthorizationError  = "AUTHORIZATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeValidationError     = "VALIDATION_ERROR"
	CodeConflict            = "CONFLICT"
	CodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	CodeServerError         = "SERVER_ERROR"
	CodeNetworkError        = "NETWORK_ERROR"
	CodeTimeout             = "TIMEOUT"
)

// Error represents a typed failure from the CRM API or the transport layer.
type Error struct {
	Kind       ErrorKind
	Message    string
	HTTPStatus int
	Code       string
	Details    map[string]any

	// RetryAfter is set for rate-limit errors, in seconds.
	RetryAfter int
	// Timeout is set for timeout errors to the configured request timeout.
	Timeout time.Duration
}

// Error implements the error interface.
func (e *Error) Error() string {
	parts := []string{e.Message}
	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.HTTPStatus != 0 {
		parts = append(parts, fmt.Sprintf("(HTTP %d)", e.HTTPStatus))
	}

	return strings.Join(parts, " ")
}

// kindOf extracts the kind from an error, or "" when it is not an *Error.
func kindOf(err error) ErrorKind {
	apiErr := &Error{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}

	return ""
}

// IsAuthentication reports whether the error is an authentication failure.
func IsAuthentication(err error) bool { return kindOf(err) == ErrorKindAuthentication }

// IsAuthorization reports whether the error is a permission failure.
func IsAuthorization(err error) bool { return kindOf(err) == ErrorKindAuthorization }

// IsNotFound reports whether the error is a missing-resource failure.
func IsNotFound(err error) bool { return kindOf(err) == ErrorKindNotFound }

// IsValidation reports whether the error is a request-validation failure.
func IsValidation(err error) bool { return kindOf(err) == ErrorKindValidation }

// IsConflict reports whether the error is a resource conflict.
func IsConflict(err error) bool { return kindOf(err) == ErrorKindConflict }

// IsRateLimit reports whether the error is a rate-limit rejection.
func IsRateLimit(err error) bool { return kindOf(err) == ErrorKindRateLimit }

// IsServer reports whether the error is a 5xx server failure.
func IsServer(err error) bool { return kindOf(err) == ErrorKindServer }

// IsNetwork reports whether the error is a transport connectivity failure.
func IsNetwork(err error) bool { return kindOf(err) == ErrorKindNetwork }

// IsTimeout reports whether the error is a request timeout.
func IsTimeout(err error) bool { return kindOf(err) == ErrorKindTimeout }

// NewTimeoutError builds the timeout variant carrying the configured timeout.
func NewTimeoutError(timeout time.Duration, cause error) *Error {
	details := map[string]any{"timeout": timeout.Seconds()}
	if cause != nil {
		details["original_error"] = cause.Error()
	}

	return &Error{
		Kind:    ErrorKindTimeout,
		Message: "request timed out",
		Code:    CodeTimeout,
		Details: details,
		Timeout: timeout,
	}
}

// NewNetworkError builds the connectivity variant wrapping a transport error.
func NewNetworkError(cause error) *Error {
	details := map[string]any{}
	if cause != nil {
		details["original_error"] = cause.Error()
	}

	return &Error{
		Kind:    ErrorKindNetwork,
		Message: "network error",
		Code:    CodeNetworkError,
		Details: details,
	}
}

// NewAuthenticationError builds an authentication failure with the default code.
func NewAuthenticationError(message string) *Error {
	return &Error{
		Kind:       ErrorKindAuthentication,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
		Code:       CodeAuthenticationError,
		Details:    map[string]any{},
	}
}

// errorBody is the decoded shape of an API error response.
type errorBody struct {
	Error      string         `json:"error"`
	Message    string         `json:"message"`
	Code       string         `json:"code"`
	Details    map[string]any `json:"details"`
	Errors     map[string]any `json:"errors"`
	RetryAfter int            `json:"retry_after"`
}

// ClassifyResponse maps an HTTP status and raw error body to a typed error.
// The mapping is total: every status >= 400 resolves to exactly one kind.
// A body that fails to decode as JSON is carried as {"error": <raw text>}.
func ClassifyResponse(status int, body []byte) *Error {
	var parsed errorBody

	err := json.Unmarshal(body, &parsed)
	if err != nil {
		parsed = errorBody{Error: string(body)}
	}

	message := parsed.Error
	if message == "" {
		message = parsed.Message
	}

	details := parsed.Details
	if details == nil {
		details = map[string]any{}
	}

	switch {
	case status == http.StatusBadRequest:
		if parsed.Errors != nil {
			details["validation_errors"] = parsed.Errors
		}

		return newStatusError(ErrorKindValidation, status, message, "Validation failed", CodeValidationError, details)

	case status == http.StatusUnauthorized:
		return newStatusError(ErrorKindAuthentication, status, message, "Authentication failed", orDefault(parsed.Code, CodeAuthenticationError), details)

	case status == http.StatusForbidden:
		return newStatusError(ErrorKindAuthorization, status, message, "Permission denied", orDefault(parsed.Code, CodeAuthorizationError), details)

	case status == http.StatusNotFound:
		return newStatusError(ErrorKindNotFound, status, message, "Resource not found", CodeNotFound, details)

	case status == http.StatusConflict:
		return newStatusError(ErrorKindConflict, status, message, "Resource conflict", orDefault(parsed.Code, CodeConflict), details)

	case status == http.StatusTooManyRequests:
		if parsed.RetryAfter > 0 {
			details["retry_after"] = parsed.RetryAfter
		}

		rateErr := newStatusError(ErrorKindRateLimit, status, message, "Rate limit exceeded", CodeRateLimitExceeded, details)
		rateErr.RetryAfter = parsed.RetryAfter

		return rateErr

	case status >= http.StatusInternalServerError:
		return newStatusError(ErrorKindServer, status, message, "Server error", orDefault(parsed.Code, CodeServerError), details)

	default:
		return newStatusError(ErrorKindGeneric, status, message, "Unknown error", parsed.Code, details)
	}
}

func newStatusError(kind ErrorKind, status int, message, defaultMessage, code string, details map[string]any) *Error {
	if message == "" {
		message = defaultMessage
	}

	return &Error{
		Kind:       kind,
		Message:    message,
		HTTPStatus: status,
		Code:       code,
		Details:    details,
	}
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}

	return fallback
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrBaseURLRequired     = errors.New("base URL is required")
	ErrNoRefreshToken      = errors.New("no refresh token available")
	ErrNoMoreItems         = errors.New("no more items")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrReasonRequired      = errors.New("reason is required")
	ErrCustomerIDRequired  = errors.New("customer ID is required")
	ErrUnknownOutputFormat = errors.New("unknown output format")
	ErrCircuitBreakerOpen  = errors.New("circuit breaker is open")
)
