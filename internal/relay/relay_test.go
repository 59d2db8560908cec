package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elefant-coder/hearing-chatbot/internal/config"
	"github.com/elefant-coder/hearing-chatbot/internal/hearing"
)

func TestNewWithoutCredential(t *testing.T) {
	_, err := New(config.LLMConfig{Provider: "openai"})
	assert.ErrorIs(t, err, hearing.ErrNotConfigured)

	_, err = New(config.LLMConfig{Provider: "anthropic"})
	assert.ErrorIs(t, err, hearing.ErrNotConfigured)
}

func TestNewUnsupportedProvider(t *testing.T) {
	_, err := New(config.LLMConfig{Provider: "gemini", OpenAIAPIKey: "sk-test"})
	assert.ErrorContains(t, err, "unsupported provider")
}

func TestNewSelectsProvider(t *testing.T) {
	openaiProvider, err := New(config.LLMConfig{
		Provider:     "openai",
		OpenAIAPIKey: "sk-test",
		Model:        "gpt-4o-mini",
	})
	require.NoError(t, err)
	assert.Equal(t, "openai", openaiProvider.Name())

	anthropicProvider, err := New(config.LLMConfig{
		Provider:        "anthropic",
		AnthropicAPIKey: "sk-ant-test",
		Model:           "claude-3-5-haiku-latest",
	})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", anthropicProvider.Name())
}
