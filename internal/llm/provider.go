package llm

import (
	"context"
)

// Provider defines the interface every vendor client implements
type Provider interface {
	// Complete sends a text-completion request and returns the raw reply text
	// ctx: context for timeout and cancellation control
	// req: the completion request; an empty Model falls back to the configured one
	// Returns the primary text field of the vendor response or a ProviderError
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Kind returns the enumerated provider tag
	Kind() Kind

	// ModelInfo returns metadata about the configured model
	ModelInfo() ModelInfo
}
