package llm

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIError_RetryableStatuses(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
		{http.StatusUnauthorized, false},
		{http.StatusForbidden, false},
		{http.StatusNotFound, false},
		{http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		err := NewAPIError(tt.status, "CODE", "message", "details")
		assert.Equal(t, tt.retryable, err.Temporary(), "status %d", tt.status)
	}
}

func TestErrorFromHTTPStatus_Mapping(t *testing.T) {
	tests := []struct {
		status       int
		expectedCode string
	}{
		{http.StatusUnauthorized, ErrorCodeInvalidAPIKey},
		{http.StatusForbidden, ErrorCodeInsufficientQuota},
		{http.StatusNotFound, ErrorCodeModelNotFound},
		{http.StatusRequestEntityTooLarge, ErrorCodeRequestTooLarge},
		{http.StatusInternalServerError, ErrorCodeServiceUnavailable},
		{http.StatusTeapot, ErrorCodeUnknown},
	}

	for _, tt := range tests {
		err := errorFromHTTPStatus(tt.status, "vendor message", nil)
		var provErr ProviderError
		require.True(t, errors.As(err, &provErr), "status %d", tt.status)
		assert.Equal(t, tt.expectedCode, provErr.Code(), "status %d", tt.status)
	}
}

func TestErrorFromHTTPStatus_RateLimit(t *testing.T) {
	err := errorFromHTTPStatus(http.StatusTooManyRequests, "slow down", nil)

	var rateErr RateLimitError
	require.True(t, errors.As(err, &rateErr))
	assert.True(t, rateErr.Temporary())
	assert.Equal(t, 60, rateErr.RetryAfter)
	assert.Equal(t, "slow down", rateErr.Message())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewNetworkError("http_request", "connection refused", nil)))
	assert.True(t, IsRetryable(NewRateLimitError(30, "rate limited")))
	assert.False(t, IsRetryable(NewConfigurationError("api_key", "missing", "")))
	assert.False(t, IsRetryable(NewAPIError(http.StatusUnauthorized, ErrorCodeInvalidAPIKey, "bad key", "")))
	assert.False(t, IsRetryable(errors.New("plain error")))
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewNetworkError("http_request", "failed", cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "http_request")
}

func TestConfigurationError_Fields(t *testing.T) {
	err := NewConfigurationError("api_key", "API key is required", "detail")
	assert.Equal(t, "CONFIGURATION_ERROR", err.Code())
	assert.Equal(t, "API key is required", err.Message())
	assert.Contains(t, err.Error(), "api_key")
}
