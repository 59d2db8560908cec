package relay

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/elefant-coder/hearing-chatbot/internal/config"
	"github.com/elefant-coder/hearing-chatbot/internal/hearing"
)

// AnthropicProvider implements Provider for Anthropic Claude
type AnthropicProvider struct {
	client      anthropic.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(apiKey string, cfg config.LLMConfig) *AnthropicProvider {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		// Anthropic requires an explicit token budget
		maxTokens = 1000
	}

	return &AnthropicProvider{
		client:      anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
	}
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Complete makes a messages call to Anthropic Claude
func (p *AnthropicProvider) Complete(ctx context.Context, systemPrompt string, msgs []hearing.Message) (string, error) {
	// Convert messages to Anthropic format
	anthropicMessages := []anthropic.MessageParam{}

	for _, msg := range msgs {
		switch msg.Role {
		case hearing.RoleUser:
			anthropicMessages = append(anthropicMessages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		case hearing.RoleAssistant:
			anthropicMessages = append(anthropicMessages, anthropic.MessageParam{
				Role: anthropic.MessageParamRoleAssistant,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(msg.Content),
				},
			})
		}
	}

	// Build request parameters
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		Messages:  anthropicMessages,
		MaxTokens: int64(p.maxTokens),
	}

	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}

	if p.temperature > 0 {
		params.Temperature = anthropic.Float(p.temperature)
	}

	// Make API call
	response, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", upstreamError(err)
	}

	// Extract text content
	content := ""
	for _, block := range response.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			content += text.Text
		}
	}

	if content == "" {
		return "", upstreamError(fmt.Errorf("no text content returned"))
	}

	return content, nil
}
