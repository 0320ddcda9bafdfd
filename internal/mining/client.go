package mining

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"promoai-api/internal/config"

	"go.uber.org/zap"
)

// pm4pyClient talks to the pm4py worker service that runs inductive miner
// discovery and model format conversion.
type pm4pyClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func newPM4PyClient(cfg config.MiningConfig, logger *zap.Logger) *pm4pyClient {
	return &pm4pyClient{
		baseURL: cfg.ServiceURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger,
	}
}

type discoverRequest struct {
	Format Format `json:"format"`
	Log    string `json:"log"`
}

type discoverResponse struct {
	BPMNXML string `json:"bpmn_xml"`
	Error   string `json:"error,omitempty"`
}

// DiscoverBPMN submits an event log to the inductive miner endpoint and
// returns the discovered model as BPMN XML.
func (c *pm4pyClient) DiscoverBPMN(ctx context.Context, format Format, log []byte) (string, error) {
	var resp discoverResponse
	if err := c.postJSON(ctx, "/v1/discover", discoverRequest{Format: format, Log: string(log)}, &resp); err != nil {
		return "", DiscoveryError{Operation: "discovery", Cause: err}
	}
	if resp.Error != "" {
		return "", DiscoveryError{Operation: "discovery", Cause: fmt.Errorf("%s", resp.Error)}
	}
	if resp.BPMNXML == "" {
		return "", DiscoveryError{Operation: "discovery", Cause: fmt.Errorf("empty model in response")}
	}
	return resp.BPMNXML, nil
}

type convertRequest struct {
	Content string `json:"content"`
	From    string `json:"from"`
	To      string `json:"to"`
}

type convertResponse struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// Convert translates a process model between serializations, e.g. bpmn
// to pnml for export or pnml to bpmn for import.
func (c *pm4pyClient) Convert(ctx context.Context, content, from, to string) (string, error) {
	var resp convertResponse
	if err := c.postJSON(ctx, "/v1/convert", convertRequest{Content: content, From: from, To: to}, &resp); err != nil {
		return "", DiscoveryError{Operation: "conversion", Cause: err}
	}
	if resp.Error != "" {
		return "", DiscoveryError{Operation: "conversion", Cause: fmt.Errorf("%s", resp.Error)}
	}
	if resp.Content == "" {
		return "", DiscoveryError{Operation: "conversion", Cause: fmt.Errorf("empty document in response")}
	}
	return resp.Content, nil
}

func (c *pm4pyClient) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Mining service returned error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("service returned status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
