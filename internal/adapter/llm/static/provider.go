// Package static provides an offline-friendly model client that returns
// canned responses. It is used for dry runs and wiring tests where no
// API key is available.
package static

import (
	"context"

	"github.com/prreview/prreview/internal/adapter/llm"
)

const defaultResponse = `{"reviews": []}`

// Client returns a fixed response for every completion request.
type Client struct {
	model    string
	response string
}

// NewClient constructs a static client reporting the given model name.
func NewClient(model string) *Client {
	return &Client{model: model, response: defaultResponse}
}

// SetResponse overrides the canned response text.
func (c *Client) SetResponse(text string) {
	c.response = text
}

// Complete returns the canned response without any network calls.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return llm.CompletionResponse{}, err
	}
	return llm.CompletionResponse{
		Text:  c.response,
		Model: c.model,
	}, nil
}
