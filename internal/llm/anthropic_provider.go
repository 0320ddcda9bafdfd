package llm

import (
	"context"
	"encoding/json"

	"promoai-api/internal/config"

	"go.uber.org/zap"
)

const anthropicVersion = "2023-06-01"

// AnthropicProvider implements the Provider interface for the Anthropic
// messages API
type AnthropicProvider struct {
	apiClient
	config config.ProviderConfig
}

// AnthropicRequest represents the request structure for the messages API.
// Unlike the chat-completions shape, the system prompt is a top-level field.
type AnthropicRequest struct {
	Model       string             `json:"model"`
	Messages    []AnthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
}

// AnthropicMessage represents one conversation turn
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnthropicResponse represents the response from the messages API
type AnthropicResponse struct {
	Content    []AnthropicContent `json:"content"`
	StopReason string             `json:"stop_reason"`
	Error      *AnthropicError    `json:"error,omitempty"`
}

// AnthropicContent represents one content block in the reply
type AnthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// AnthropicError represents an error payload from the API
type AnthropicError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewAnthropicProvider creates a new AnthropicProvider instance
func NewAnthropicProvider(cfg config.LLMConfig, providerCfg config.ProviderConfig, logger *zap.Logger) *AnthropicProvider {
	return &AnthropicProvider{
		apiClient: newAPIClient(cfg, logger),
		config:    providerCfg,
	}
}

// Complete implements the Provider interface
func (p *AnthropicProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if p.config.APIKey == "" {
		return "", NewConfigurationError("api_key", "API key is required", "Anthropic API key must be configured")
	}

	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	apiReq := AnthropicRequest{
		Model: model,
		Messages: []AnthropicMessage{
			{Role: "user", Content: req.Prompt},
		},
		System:      req.System,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return "", NewResponseError(ErrorCodeInvalidRequest, "Failed to marshal request", err.Error(), false)
	}

	headers := map[string]string{
		"x-api-key":         p.config.APIKey,
		"anthropic-version": anthropicVersion,
	}

	return p.completeWithRetry(ctx, func() (string, error) {
		responseBody, err := p.postJSON(ctx, p.config.APIEndpoint, headers, body, extractAnthropicError)
		if err != nil {
			return "", err
		}
		return parseAnthropicResponse(responseBody)
	})
}

// Kind implements the Provider interface
func (p *AnthropicProvider) Kind() Kind {
	return KindAnthropic
}

// ModelInfo implements the Provider interface
func (p *AnthropicProvider) ModelInfo() ModelInfo {
	return ModelInfo{
		Name:     p.config.Model,
		Provider: KindAnthropic.DisplayName(),
		Capabilities: []string{
			"text_generation",
			"bpmn_generation",
			"chat_completion",
		},
		MaxTokens: 4096,
	}
}

func parseAnthropicResponse(responseBody []byte) (string, error) {
	var apiResp AnthropicResponse
	if err := json.Unmarshal(responseBody, &apiResp); err != nil {
		return "", NewResponseError(ErrorCodeInvalidRequest, "Failed to parse API response", err.Error(), false)
	}

	if apiResp.Error != nil {
		return "", NewResponseError(apiResp.Error.Type, apiResp.Error.Message, "API returned error response", false)
	}

	if len(apiResp.Content) == 0 {
		return "", NewResponseError(ErrorCodeEmptyResponse, "No content in API response", "Anthropic API returned an empty content array", true)
	}

	return apiResp.Content[0].Text, nil
}

func extractAnthropicError(body []byte) string {
	var apiResp AnthropicResponse
	if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Error != nil {
		return apiResp.Error.Message
	}
	return ""
}
