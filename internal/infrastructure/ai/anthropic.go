package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/adminhub/backend/internal/domain/assistant"
)

const defaultSystemPrompt = "You are a helpful assistant embedded in a " +
	"business administration tool. Answer questions about companies, " +
	"clients, projects and day-to-day workflows concisely."

// Config holds the Anthropic provider settings
type Config struct {
	APIKey       string
	Model        string
	MaxTokens    int64
	SystemPrompt string
}

// AnthropicProvider completes conversations through the Anthropic Messages API
type AnthropicProvider struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	system    string
}

// NewAnthropicProvider creates a provider from the given configuration
func NewAnthropicProvider(cfg Config) *AnthropicProvider {
	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	system := cfg.SystemPrompt
	if system == "" {
		system = defaultSystemPrompt
	}

	return &AnthropicProvider{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     anthropic.Model(model),
		maxTokens: maxTokens,
		system:    system,
	}
}

// Complete replays the conversation history and returns the model reply
func (p *AnthropicProvider) Complete(ctx context.Context, history []assistant.Message) (string, error) {
	msgs := make([]anthropic.MessageParam, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case assistant.RoleUser:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case assistant.RoleAssistant:
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	if len(msgs) == 0 {
		return "", fmt.Errorf("anthropic complete: empty history")
	}

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		Messages:  msgs,
		System: []anthropic.TextBlockParam{
			{Text: p.system},
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic complete: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return sb.String(), nil
}
