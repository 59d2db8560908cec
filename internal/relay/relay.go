// Package relay turns a transcript into the next assistant message via a
// hosted language-model service. It holds no state and persists nothing;
// every call is attempted exactly once.
package relay

import (
	"context"
	"fmt"

	"github.com/elefant-coder/hearing-chatbot/internal/config"
	"github.com/elefant-coder/hearing-chatbot/internal/hearing"
)

// Provider is an interface for completion API providers
type Provider interface {
	// Complete produces one assistant reply for the given transcript. An
	// empty transcript plus the system prompt alone is valid (first turn).
	Complete(ctx context.Context, systemPrompt string, messages []hearing.Message) (string, error)

	// Name returns the provider name
	Name() string
}

// New creates the provider selected by configuration. The credential is
// checked here, before any network call can happen.
func New(cfg config.LLMConfig) (Provider, error) {
	apiKey := cfg.APIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s API key", hearing.ErrNotConfigured, cfg.Provider)
	}

	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(apiKey, cfg), nil
	case "anthropic":
		return NewAnthropicProvider(apiKey, cfg), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

func upstreamError(err error) error {
	return fmt.Errorf("%w: %v", hearing.ErrUpstream, err)
}
