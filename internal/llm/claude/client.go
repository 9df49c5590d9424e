// Package claude implements triage.Provider on the Anthropic Messages
// API, selectable as an alternate backend with -llm-provider=claude.
package claude

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/carelabs/triago/internal/triage"
)

// Client calls the Anthropic Messages API through the official SDK.
type Client struct {
	client anthropic.Client
	model  string
}

// New creates a new Claude client with the given API key and model name.
func New(apiKey, model string) *Client {
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Send performs a single-turn message exchange and returns the
// concatenated text content. A response with no text content is an
// upstream contract error.
func (c *Client) Send(ctx context.Context, req *triage.ChatRequest) (*triage.ChatResponse, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(req.MaxTokens),
		System:    []anthropic.TextBlockParam{{Text: req.System}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("messages create: %w", err)
	}

	text := textContent(msg)
	if text == "" {
		return nil, triage.NewInvalidAssessment(triage.ReasonEnvelope, errors.New("response has no text content"))
	}

	return &triage.ChatResponse{
		Content: text,
		Model:   string(msg.Model),
		Usage: triage.Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
	}, nil
}

// textContent concatenates the text blocks of a response, skipping any
// other block types.
func textContent(msg *anthropic.Message) string {
	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text
}
