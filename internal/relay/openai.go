package relay

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/elefant-coder/hearing-chatbot/internal/config"
	"github.com/elefant-coder/hearing-chatbot/internal/hearing"
)

// OpenAIProvider implements Provider for OpenAI
type OpenAIProvider struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string, cfg config.LLMConfig) *OpenAIProvider {
	return &OpenAIProvider{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Complete makes a chat completion call to OpenAI
func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt string, msgs []hearing.Message) (string, error) {
	// Convert messages to OpenAI format
	messages := []openai.ChatCompletionMessageParamUnion{}

	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}

	for _, msg := range msgs {
		switch msg.Role {
		case hearing.RoleUser:
			messages = append(messages, openai.UserMessage(msg.Content))
		case hearing.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		}
	}

	// Build request parameters
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: messages,
	}

	if p.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(p.maxTokens))
	}

	if p.temperature > 0 {
		params.Temperature = openai.Float(p.temperature)
	}

	// Make API call
	response, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", upstreamError(err)
	}

	if len(response.Choices) == 0 {
		return "", upstreamError(fmt.Errorf("no response choices returned"))
	}

	return response.Choices[0].Message.Content, nil
}
