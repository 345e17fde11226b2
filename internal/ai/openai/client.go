// Package openai provides the OpenAI-backed content generator for the
// interview delegates.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	defaultModel       = "gpt-4o-mini"
	defaultMaxTokens   = 4000
	defaultTemperature = 0.1
)

// chatCompleter matches the chat completion surface of the official SDK so
// tests can substitute a fake.
type chatCompleter interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client completes prompts via the OpenAI chat completions API, constrained
// to JSON object responses.
type Client struct {
	completions chatCompleter
	model       string
	maxTokens   int64
	temperature float64
}

// New creates a Client for the given API key. Empty options fall back to
// conservative defaults suited for structured output.
func New(apiKey, model string, maxTokens int, temperature float64) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	if temperature < 0 {
		temperature = defaultTemperature
	}

	sdk := openai.NewClient(option.WithAPIKey(apiKey))

	return &Client{
		completions: &sdk.Chat.Completions,
		model:       model,
		maxTokens:   int64(maxTokens),
		temperature: temperature,
	}, nil
}

// Complete sends the system and user prompts and returns the first textual
// choice. The request forces JSON object output.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if c == nil || c.completions == nil {
		return "", errors.New("openai client is not initialized")
	}

	if strings.TrimSpace(user) == "" {
		return "", errors.New("prompt must not be empty")
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	resp, err := c.completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai api returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("openai api returned empty content")
	}

	return content, nil
}

// Model reports the configured model identifier.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
