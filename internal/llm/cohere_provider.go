package llm

import (
	"context"
	"encoding/json"

	"promoai-api/internal/config"

	"go.uber.org/zap"
)

// CohereProvider implements the Provider interface for the Cohere
// generate API
type CohereProvider struct {
	apiClient
	config config.ProviderConfig
}

// CohereRequest represents the request structure for the generate API.
// Cohere takes a single raw prompt rather than a message list.
type CohereRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// CohereResponse represents the response from the generate API
type CohereResponse struct {
	Generations []CohereGeneration `json:"generations"`
	Message     string             `json:"message,omitempty"`
}

// CohereGeneration represents one generated completion
type CohereGeneration struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// NewCohereProvider creates a new CohereProvider instance
func NewCohereProvider(cfg config.LLMConfig, providerCfg config.ProviderConfig, logger *zap.Logger) *CohereProvider {
	return &CohereProvider{
		apiClient: newAPIClient(cfg, logger),
		config:    providerCfg,
	}
}

// Complete implements the Provider interface
func (p *CohereProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if p.config.APIKey == "" {
		return "", NewConfigurationError("api_key", "API key is required", "Cohere API key must be configured")
	}

	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + prompt
	}

	apiReq := CohereRequest{
		Model:       model,
		Prompt:      prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return "", NewResponseError(ErrorCodeInvalidRequest, "Failed to marshal request", err.Error(), false)
	}

	headers := map[string]string{
		"Authorization": "Bearer " + p.config.APIKey,
	}

	return p.completeWithRetry(ctx, func() (string, error) {
		responseBody, err := p.postJSON(ctx, p.config.APIEndpoint, headers, body, extractCohereError)
		if err != nil {
			return "", err
		}
		return parseCohereResponse(responseBody)
	})
}

// Kind implements the Provider interface
func (p *CohereProvider) Kind() Kind {
	return KindCohere
}

// ModelInfo implements the Provider interface
func (p *CohereProvider) ModelInfo() ModelInfo {
	return ModelInfo{
		Name:     p.config.Model,
		Provider: KindCohere.DisplayName(),
		Capabilities: []string{
			"text_generation",
			"bpmn_generation",
		},
		MaxTokens: 4096,
	}
}

func parseCohereResponse(responseBody []byte) (string, error) {
	var apiResp CohereResponse
	if err := json.Unmarshal(responseBody, &apiResp); err != nil {
		return "", NewResponseError(ErrorCodeInvalidRequest, "Failed to parse API response", err.Error(), false)
	}

	if len(apiResp.Generations) == 0 {
		msg := apiResp.Message
		if msg == "" {
			msg = "Cohere API returned an empty generations array"
		}
		return "", NewResponseError(ErrorCodeEmptyResponse, "No generations in API response", msg, true)
	}

	return apiResp.Generations[0].Text, nil
}

func extractCohereError(body []byte) string {
	var apiResp CohereResponse
	if err := json.Unmarshal(body, &apiResp); err == nil {
		return apiResp.Message
	}
	return ""
}
