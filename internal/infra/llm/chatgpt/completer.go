package chatgpt

import (
	"context"
	"errors"
	"strings"

	"github.com/yanqian/weather-advisor/internal/domain/advisory"
	"github.com/yanqian/weather-advisor/pkg/metrics"
)

// Completer adapts the ChatGPT client to the advisory refiner.
type Completer struct {
	client *Client
}

// NewCompleter constructs the adapter.
func NewCompleter(client *Client) *Completer {
	return &Completer{client: client}
}

// Complete sends the system and user prompts as one chat completion.
func (c *Completer) Complete(ctx context.Context, req advisory.CompletionRequest) (advisory.Completion, error) {
	resp, err := c.client.CreateChatCompletion(ctx, ChatCompletionRequest{
		Model: req.Model,
		Messages: []Message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: req.Temperature,
	})
	if err != nil {
		return advisory.Completion{}, err
	}
	if len(resp.Choices) == 0 {
		return advisory.Completion{}, errors.New("chatgpt returned no choices")
	}
	return advisory.Completion{
		Text: strings.TrimSpace(resp.Choices[0].Message.Content),
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

var _ advisory.Completer = (*Completer)(nil)
