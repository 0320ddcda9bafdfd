package llm

import (
	"fmt"

	"promoai-api/internal/config"

	"go.uber.org/zap"
)

type factory func(cfg config.LLMConfig, providerCfg config.ProviderConfig, logger *zap.Logger) Provider

// factories is the dispatch table mapping provider kinds to constructors.
var factories = map[Kind]factory{
	KindOpenAI: func(cfg config.LLMConfig, pc config.ProviderConfig, logger *zap.Logger) Provider {
		return NewOpenAIProvider(cfg, pc, logger)
	},
	KindAnthropic: func(cfg config.LLMConfig, pc config.ProviderConfig, logger *zap.Logger) Provider {
		return NewAnthropicProvider(cfg, pc, logger)
	},
	KindGoogle: func(cfg config.LLMConfig, pc config.ProviderConfig, logger *zap.Logger) Provider {
		return NewGoogleProvider(cfg, pc, logger)
	},
	KindCohere: func(cfg config.LLMConfig, pc config.ProviderConfig, logger *zap.Logger) Provider {
		return NewCohereProvider(cfg, pc, logger)
	},
}

// providerConfigFor selects the per-vendor section of the LLM config.
func providerConfigFor(cfg config.LLMConfig, kind Kind) (config.ProviderConfig, error) {
	switch kind {
	case KindOpenAI:
		return cfg.OpenAI, nil
	case KindAnthropic:
		return cfg.Anthropic, nil
	case KindGoogle:
		return cfg.Google, nil
	case KindCohere:
		return cfg.Cohere, nil
	default:
		return config.ProviderConfig{}, fmt.Errorf("unsupported provider %q", kind)
	}
}

// NewProvider constructs a single provider for the given kind.
func NewProvider(kind Kind, cfg config.LLMConfig, logger *zap.Logger) (Provider, error) {
	create, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported provider %q", kind)
	}

	providerCfg, err := providerConfigFor(cfg, kind)
	if err != nil {
		return nil, err
	}

	return create(cfg, providerCfg, logger), nil
}

// Registry holds one constructed provider per supported kind and knows
// which of them have credentials configured.
type Registry struct {
	providers map[Kind]Provider
	cfg       config.LLMConfig
}

// NewRegistry constructs providers for every supported kind.
func NewRegistry(cfg config.LLMConfig, logger *zap.Logger) (*Registry, error) {
	providers := make(map[Kind]Provider, len(factories))
	for _, kind := range Kinds() {
		provider, err := NewProvider(kind, cfg, logger)
		if err != nil {
			return nil, err
		}
		providers[kind] = provider
	}

	return &Registry{providers: providers, cfg: cfg}, nil
}

// Get returns the provider for a kind.
func (r *Registry) Get(kind Kind) (Provider, error) {
	provider, ok := r.providers[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported provider %q", kind)
	}
	return provider, nil
}

// Configured reports whether the kind has an API key set.
func (r *Registry) Configured(kind Kind) bool {
	providerCfg, err := providerConfigFor(r.cfg, kind)
	if err != nil {
		return false
	}
	return providerCfg.APIKey != ""
}

// Available returns the kinds that have credentials configured, in
// stable order.
func (r *Registry) Available() []Kind {
	available := make([]Kind, 0, len(r.providers))
	for _, kind := range Kinds() {
		if r.Configured(kind) {
			available = append(available, kind)
		}
	}
	return available
}

// DefaultModel returns the configured model identifier for a kind.
func (r *Registry) DefaultModel(kind Kind) string {
	providerCfg, err := providerConfigFor(r.cfg, kind)
	if err != nil {
		return ""
	}
	return providerCfg.Model
}
