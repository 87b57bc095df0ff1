// Package synthesis calls the chat-completion model that turns assembled
// context into an answer. It is deliberately thin: grounding and fallback
// policy live in the service, not here.
package synthesis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 60 * time.Second

	systemPrompt = "You are a helpful assistant for Upload Digital. " +
		"Never invent external info; stick to the provided context."

	userPromptFormat = `Answer based ONLY on the CONTEXT below.
Write in clean short paragraphs. If you list items, use simple bullet points.

CONTEXT:
%s

QUESTION: %s

ANSWER:`
)

// Config configures the synthesis client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // overridable for tests and compatible gateways
	Timeout time.Duration
}

// Client implements domain.Synthesizer on top of the OpenAI chat API.
type Client struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewClient creates the synthesis client. The API key is a required
// credential: callers treat a missing key as a startup failure.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing OpenAI API key")
	}
	opts := []openaiopt.RequestOption{openaiopt.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, openaiopt.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{client: openai.NewClient(opts...), model: model, timeout: timeout}, nil
}

// Synthesize generates an answer grounded in contextText. Errors surface to
// the caller; retry policy, if any, belongs to the model gateway.
func (c *Client) Synthesize(ctx context.Context, contextText, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf(userPromptFormat, contextText, question)),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("answer synthesis: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("answer synthesis: no choices returned")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
