// Package openrouter implements triage.Provider against an
// OpenAI-compatible chat-completions endpoint, OpenRouter by default.
package openrouter

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/carelabs/triago/internal/triage"
)

// DefaultBaseURL is the OpenRouter chat-completions endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Client calls an OpenAI-compatible chat-completions API.
type Client struct {
	client *openai.Client
	model  string
}

// New creates a client for the given API key and model. baseURL is the
// API root; empty selects OpenRouter. Point it at any OpenAI-compatible
// server (including a test server) to swap backends.
func New(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cfg.BaseURL = baseURL
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Send performs a single chat completion and returns the raw assistant
// text. An envelope with no choices or empty content is an upstream
// contract error, not a transport error.
func (c *Client) Send(ctx context.Context, req *triage.ChatRequest) (*triage.ChatResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: req.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, triage.NewInvalidAssessment(triage.ReasonEnvelope, errors.New("response has no choices"))
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, triage.NewInvalidAssessment(triage.ReasonEnvelope, errors.New("response message has no content"))
	}

	return &triage.ChatResponse{
		Content: content,
		Model:   resp.Model,
		Usage: triage.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}
