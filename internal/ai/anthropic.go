package ai

import (
	"context"
	"os"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/chytanka/chytanka/internal/errors"
)

// AnthropicProvider generates text through the Anthropic Messages API.
type AnthropicProvider struct {
	apiKey string
	model  string
	client anthropic.Client
}

// NewAnthropicProvider creates a provider reading ANTHROPIC_API_KEY from
// the environment.
func NewAnthropicProvider(model string) *AnthropicProvider {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	return &AnthropicProvider{
		apiKey: apiKey,
		model:  model,
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

// Available reports whether an API key is configured.
func (p *AnthropicProvider) Available() bool {
	return p.apiKey != ""
}

// Name returns "anthropic".
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Generate sends one message to the model and returns the text response.
func (p *AnthropicProvider) Generate(ctx context.Context, prompt, system string, maxTokens int) (string, error) {
	if !p.Available() {
		return "", errors.NewProviderUnavailable(p.Name(), nil)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.NewCancelled()
		}
		return "", errors.NewProviderUnavailable(p.Name(), err)
	}
	if len(msg.Content) == 0 {
		return "", errors.NewProviderUnavailable(p.Name(), nil)
	}
	return msg.Content[0].Text, nil
}
