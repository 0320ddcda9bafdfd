package llm

import (
	"context"
	"encoding/json"

	"promoai-api/internal/config"

	"go.uber.org/zap"
)

// OpenAIProvider implements the Provider interface for the OpenAI
// chat-completions API
type OpenAIProvider struct {
	apiClient
	config config.ProviderConfig
}

// OpenAIRequest represents the request structure for the chat-completions API
type OpenAIRequest struct {
	Model       string          `json:"model"`
	Messages    []OpenAIMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

// OpenAIMessage represents one chat message
type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIResponse represents the response from the chat-completions API
type OpenAIResponse struct {
	Choices []OpenAIChoice `json:"choices"`
	Error   *OpenAIError   `json:"error,omitempty"`
}

// OpenAIChoice represents one completion candidate
type OpenAIChoice struct {
	Message      OpenAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// OpenAIError represents an error payload from the API
type OpenAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// NewOpenAIProvider creates a new OpenAIProvider instance
func NewOpenAIProvider(cfg config.LLMConfig, providerCfg config.ProviderConfig, logger *zap.Logger) *OpenAIProvider {
	return &OpenAIProvider{
		apiClient: newAPIClient(cfg, logger),
		config:    providerCfg,
	}
}

// Complete implements the Provider interface
func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if p.config.APIKey == "" {
		return "", NewConfigurationError("api_key", "API key is required", "OpenAI API key must be configured")
	}

	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	messages := make([]OpenAIMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, OpenAIMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, OpenAIMessage{Role: "user", Content: req.Prompt})

	apiReq := OpenAIRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return "", NewResponseError(ErrorCodeInvalidRequest, "Failed to marshal request", err.Error(), false)
	}

	headers := map[string]string{
		"Authorization": "Bearer " + p.config.APIKey,
	}

	return p.completeWithRetry(ctx, func() (string, error) {
		responseBody, err := p.postJSON(ctx, p.config.APIEndpoint, headers, body, extractOpenAIError)
		if err != nil {
			return "", err
		}
		return parseOpenAIResponse(responseBody)
	})
}

// Kind implements the Provider interface
func (p *OpenAIProvider) Kind() Kind {
	return KindOpenAI
}

// ModelInfo implements the Provider interface
func (p *OpenAIProvider) ModelInfo() ModelInfo {
	return ModelInfo{
		Name:     p.config.Model,
		Provider: KindOpenAI.DisplayName(),
		Capabilities: []string{
			"text_generation",
			"bpmn_generation",
			"chat_completion",
		},
		MaxTokens: 8192,
	}
}

func parseOpenAIResponse(responseBody []byte) (string, error) {
	var apiResp OpenAIResponse
	if err := json.Unmarshal(responseBody, &apiResp); err != nil {
		return "", NewResponseError(ErrorCodeInvalidRequest, "Failed to parse API response", err.Error(), false)
	}

	if apiResp.Error != nil {
		return "", NewResponseError(apiResp.Error.Type, apiResp.Error.Message, apiResp.Error.Code, false)
	}

	if len(apiResp.Choices) == 0 {
		return "", NewResponseError(ErrorCodeEmptyResponse, "No choices in API response", "OpenAI API returned an empty choices array", true)
	}

	return apiResp.Choices[0].Message.Content, nil
}

func extractOpenAIError(body []byte) string {
	var apiResp OpenAIResponse
	if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Error != nil {
		return apiResp.Error.Message
	}
	return ""
}
