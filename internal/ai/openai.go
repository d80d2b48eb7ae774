package ai

import (
	"context"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/chytanka/chytanka/internal/errors"
)

// OpenAIProvider generates text through the OpenAI chat completions API.
type OpenAIProvider struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAIProvider creates a provider reading OPENAI_API_KEY from the
// environment.
func NewOpenAIProvider(model string) *OpenAIProvider {
	apiKey := os.Getenv("OPENAI_API_KEY")
	return &OpenAIProvider{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClient(apiKey),
	}
}

// Available reports whether an API key is configured.
func (p *OpenAIProvider) Available() bool {
	return p.apiKey != ""
}

// Name returns "openai".
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Generate sends one chat completion request and returns the text response.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt, system string, maxTokens int) (string, error) {
	if !p.Available() {
		return "", errors.NewProviderUnavailable(p.Name(), nil)
	}

	var messages []openai.ChatCompletionMessage
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.NewCancelled()
		}
		return "", errors.NewProviderUnavailable(p.Name(), err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.NewProviderUnavailable(p.Name(), nil)
	}
	return resp.Choices[0].Message.Content, nil
}
