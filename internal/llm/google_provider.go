package llm

import (
	"context"
	"encoding/json"
	"strings"

	"promoai-api/internal/config"

	"go.uber.org/zap"
)

// GoogleProvider implements the Provider interface for the Google
// generateContent API
type GoogleProvider struct {
	apiClient
	config config.ProviderConfig
}

// GoogleRequest represents the request structure for the generateContent API
type GoogleRequest struct {
	Contents         []GoogleContent        `json:"contents"`
	GenerationConfig GoogleGenerationConfig `json:"generationConfig,omitempty"`
}

// GoogleContent represents content in the request or reply
type GoogleContent struct {
	Parts []GooglePart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

// GooglePart represents a part of the content
type GooglePart struct {
	Text string `json:"text"`
}

// GoogleGenerationConfig represents generation configuration
type GoogleGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GoogleResponse represents the response from the generateContent API
type GoogleResponse struct {
	Candidates []GoogleCandidate `json:"candidates"`
	Error      *GoogleError      `json:"error,omitempty"`
}

// GoogleCandidate represents a candidate response
type GoogleCandidate struct {
	Content      GoogleContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

// GoogleError represents an error from the API
type GoogleError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewGoogleProvider creates a new GoogleProvider instance
func NewGoogleProvider(cfg config.LLMConfig, providerCfg config.ProviderConfig, logger *zap.Logger) *GoogleProvider {
	return &GoogleProvider{
		apiClient: newAPIClient(cfg, logger),
		config:    providerCfg,
	}
}

// Complete implements the Provider interface
func (p *GoogleProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if p.config.APIKey == "" {
		return "", NewConfigurationError("api_key", "API key is required", "Google API key must be configured")
	}

	// The generateContent API has no separate system role; the system
	// prompt is prepended to the user turn.
	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + prompt
	}

	apiReq := GoogleRequest{
		Contents: []GoogleContent{
			{
				Parts: []GooglePart{{Text: prompt}},
				Role:  "user",
			},
		},
		GenerationConfig: GoogleGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return "", NewResponseError(ErrorCodeInvalidRequest, "Failed to marshal request", err.Error(), false)
	}

	headers := map[string]string{
		"x-goog-api-key": p.config.APIKey,
	}

	return p.completeWithRetry(ctx, func() (string, error) {
		responseBody, err := p.postJSON(ctx, p.endpointForModel(req.Model), headers, body, extractGoogleError)
		if err != nil {
			return "", err
		}
		return parseGoogleResponse(responseBody)
	})
}

// Kind implements the Provider interface
func (p *GoogleProvider) Kind() Kind {
	return KindGoogle
}

// ModelInfo implements the Provider interface
func (p *GoogleProvider) ModelInfo() ModelInfo {
	return ModelInfo{
		Name:     p.config.Model,
		Provider: KindGoogle.DisplayName(),
		Capabilities: []string{
			"text_generation",
			"bpmn_generation",
		},
		MaxTokens: 8192,
	}
}

// endpointForModel swaps the configured model segment of the endpoint when
// the caller selects a different model for a single request.
func (p *GoogleProvider) endpointForModel(model string) string {
	if model == "" || model == p.config.Model || p.config.Model == "" {
		return p.config.APIEndpoint
	}
	return strings.Replace(p.config.APIEndpoint, "/"+p.config.Model+":", "/"+model+":", 1)
}

func parseGoogleResponse(responseBody []byte) (string, error) {
	var apiResp GoogleResponse
	if err := json.Unmarshal(responseBody, &apiResp); err != nil {
		return "", NewResponseError(ErrorCodeInvalidRequest, "Failed to parse API response", err.Error(), false)
	}

	if apiResp.Error != nil {
		return "", NewAPIError(apiResp.Error.Code, apiResp.Error.Status, apiResp.Error.Message, "API returned error response")
	}

	if len(apiResp.Candidates) == 0 {
		return "", NewResponseError(ErrorCodeEmptyResponse, "No candidates in API response", "Google API returned an empty candidates array", true)
	}

	candidate := apiResp.Candidates[0]
	if len(candidate.Content.Parts) == 0 {
		return "", NewResponseError(ErrorCodeEmptyResponse, "No content parts in API response", "Google API returned empty content parts", true)
	}

	return candidate.Content.Parts[0].Text, nil
}

func extractGoogleError(body []byte) string {
	var apiResp GoogleResponse
	if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Error != nil {
		return apiResp.Error.Message
	}
	return ""
}
