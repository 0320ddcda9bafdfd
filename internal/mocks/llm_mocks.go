package mocks

import (
	"context"
	"fmt"
	"sync"

	"promoai-api/internal/llm"
)

// MockProvider provides a configurable implementation of llm.Provider
type MockProvider struct {
	ProviderKind     llm.Kind
	CompleteResponse string
	CompleteError    error
	Info             llm.ModelInfo

	mu            sync.Mutex
	completeCalls []llm.CompletionRequest
}

// NewMockProvider creates a new mock provider for the given kind
func NewMockProvider(kind llm.Kind) *MockProvider {
	return &MockProvider{
		ProviderKind: kind,
		Info: llm.ModelInfo{
			Name:         "mock-model",
			Provider:     kind.DisplayName(),
			Capabilities: []string{"text_generation"},
			MaxTokens:    4096,
		},
	}
}

// Complete implements the llm.Provider interface
func (m *MockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	m.mu.Lock()
	m.completeCalls = append(m.completeCalls, req)
	m.mu.Unlock()

	if m.CompleteError != nil {
		return "", m.CompleteError
	}
	return m.CompleteResponse, nil
}

// Kind implements the llm.Provider interface
func (m *MockProvider) Kind() llm.Kind {
	return m.ProviderKind
}

// ModelInfo implements the llm.Provider interface
func (m *MockProvider) ModelInfo() llm.ModelInfo {
	return m.Info
}

// CompleteCalls returns a copy of the recorded completion requests
func (m *MockProvider) CompleteCalls() []llm.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]llm.CompletionRequest, len(m.completeCalls))
	copy(calls, m.completeCalls)
	return calls
}

// MockProviderSource resolves kinds to pre-registered mock providers
type MockProviderSource struct {
	Providers map[llm.Kind]llm.Provider
}

// NewMockProviderSource creates a source with the given providers registered
func NewMockProviderSource(providers ...llm.Provider) *MockProviderSource {
	source := &MockProviderSource{Providers: make(map[llm.Kind]llm.Provider)}
	for _, p := range providers {
		source.Providers[p.Kind()] = p
	}
	return source
}

// Get implements the generator.ProviderSource interface
func (s *MockProviderSource) Get(kind llm.Kind) (llm.Provider, error) {
	provider, ok := s.Providers[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported provider %q", kind)
	}
	return provider, nil
}
