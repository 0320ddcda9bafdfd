package llm

import (
	"fmt"
	"strings"
)

// Kind is the enumerated tag for a supported LLM vendor. Dispatch happens
// through the registry's factory table keyed by Kind, never by comparing
// raw provider strings at the call site.
type Kind string

const (
	KindOpenAI    Kind = "openai"
	KindAnthropic Kind = "anthropic"
	KindGoogle    Kind = "google"
	KindCohere    Kind = "cohere"
)

// Kinds lists all supported provider kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindOpenAI, KindAnthropic, KindGoogle, KindCohere}
}

// ParseKind converts a provider name into a Kind. Matching is
// case-insensitive; unknown names return an error.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "openai":
		return KindOpenAI, nil
	case "anthropic":
		return KindAnthropic, nil
	case "google":
		return KindGoogle, nil
	case "cohere":
		return KindCohere, nil
	default:
		return "", fmt.Errorf("unsupported provider %q", s)
	}
}

// String returns the string representation of the Kind
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the supported providers
func (k Kind) IsValid() bool {
	switch k {
	case KindOpenAI, KindAnthropic, KindGoogle, KindCohere:
		return true
	default:
		return false
	}
}

// DisplayName returns the vendor name as shown to users
func (k Kind) DisplayName() string {
	switch k {
	case KindOpenAI:
		return "OpenAI"
	case KindAnthropic:
		return "Anthropic"
	case KindGoogle:
		return "Google"
	case KindCohere:
		return "Cohere"
	default:
		return string(k)
	}
}

// KnownModels returns the selectable model identifiers for the vendor.
func (k Kind) KnownModels() []string {
	switch k {
	case KindOpenAI:
		return []string{"gpt-4", "gpt-4-turbo", "gpt-3.5-turbo"}
	case KindAnthropic:
		return []string{"claude-3-opus-20240229", "claude-3-sonnet-20240229", "claude-3-haiku-20240307"}
	case KindGoogle:
		return []string{"gemini-pro", "gemini-pro-vision"}
	case KindCohere:
		return []string{"command", "command-light"}
	default:
		return nil
	}
}

// CompletionRequest is a single text-completion call against a provider.
type CompletionRequest struct {
	Prompt      string  `json:"prompt" validate:"required"`
	System      string  `json:"system,omitempty"`
	Model       string  `json:"model,omitempty"` // empty selects the provider's configured model
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// ModelInfo contains metadata about the model a provider is configured for
type ModelInfo struct {
	Name         string   `json:"name"`
	Provider     string   `json:"provider"`
	Capabilities []string `json:"capabilities"`
	MaxTokens    int      `json:"max_tokens"`
}
