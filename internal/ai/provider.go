// Package ai generates learning content through an LLM provider. Two
// backends are supported: Anthropic and OpenAI. API keys come from the
// environment; the provider choice and models come from config.
package ai

import (
	"context"

	"github.com/chytanka/chytanka/internal/config"
	"github.com/chytanka/chytanka/internal/errors"
)

// systemPrompt frames every generation request.
const systemPrompt = `You are a Ukrainian language teaching assistant.
You help create learning materials for English speakers learning Ukrainian.
Always provide accurate Ukrainian with proper grammar and spelling.
Use the Cyrillic alphabet for Ukrainian text.`

// Provider is a text-generation backend.
type Provider interface {
	// Generate sends a prompt with an optional system prompt and returns
	// the model's text response.
	Generate(ctx context.Context, prompt, system string, maxTokens int) (string, error)

	// Available reports whether the provider is configured (has an API key).
	Available() bool

	// Name returns the provider identifier ("anthropic" or "openai").
	Name() string
}

// NewProvider builds the provider selected in config. Returns a
// PROVIDER_UNAVAILABLE error when no provider is configured or the
// selected provider has no API key.
func NewProvider(cfg *config.Config) (Provider, error) {
	var p Provider
	switch cfg.AIProvider {
	case "anthropic":
		p = NewAnthropicProvider(cfg.AnthropicModel)
	case "openai":
		p = NewOpenAIProvider(cfg.OpenAIModel)
	case "":
		return nil, errors.NewProviderUnavailable("none", nil)
	default:
		return nil, errors.NewInvalidRequest("unknown ai_provider: " + cfg.AIProvider)
	}

	if !p.Available() {
		return nil, errors.NewProviderUnavailable(p.Name(), nil)
	}
	return p, nil
}
