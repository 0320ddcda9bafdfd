package llm

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"promoai-api/internal/config"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// apiClient carries the HTTP plumbing shared by all vendor providers:
// the timeout-bound client, retry policy, and status-to-error mapping.
type apiClient struct {
	httpClient *http.Client
	maxRetries int
	logger     *zap.Logger
}

func newAPIClient(cfg config.LLMConfig, logger *zap.Logger) apiClient {
	return apiClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// postJSON performs a single POST of the marshaled body and returns the raw
// response body on HTTP 200. Non-200 statuses are mapped to typed errors via
// the extractErr callback, which pulls the vendor-specific message out of the
// error body.
func (c apiClient) postJSON(ctx context.Context, endpoint string, headers map[string]string, body []byte, extractErr func([]byte) string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, NewNetworkError("create_request", "Failed to create HTTP request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, NewNetworkError("http_request", "Failed to make HTTP request", err)
	}
	defer httpResp.Body.Close()

	responseBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewNetworkError("read_response", "Failed to read response body", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		errorMsg := string(responseBody)
		if extractErr != nil {
			if msg := extractErr(responseBody); msg != "" {
				errorMsg = msg
			}
		}
		return nil, errorFromHTTPStatus(httpResp.StatusCode, errorMsg, responseBody)
	}

	return responseBody, nil
}

// completeWithRetry runs the vendor call under exponential backoff,
// stopping early on non-retryable errors.
func (c apiClient) completeWithRetry(ctx context.Context, call func() (string, error)) (string, error) {
	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.InitialInterval = 1 * time.Second
	backoffStrategy.MaxInterval = 30 * time.Second
	backoffStrategy.MaxElapsedTime = 2 * time.Minute
	backoffStrategy.Multiplier = 2.0

	policy := backoff.WithContext(backoff.WithMaxRetries(backoffStrategy, uint64(c.maxRetries)), ctx)

	var result string
	operation := func() error {
		text, err := call()
		if err != nil {
			if IsRetryable(err) {
				c.logger.Warn("Retryable provider error, will retry", zap.Error(err))
				return err
			}
			return backoff.Permanent(err)
		}
		result = text
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return result, nil
}
