// Package llm defines the minimal inference surface the review pipeline
// needs from a model provider.
package llm

import "context"

// CompletionRequest is one inference call: a fully rendered prompt and an
// output-size cap.
type CompletionRequest struct {
	Prompt    string
	MaxTokens int
}

// CompletionResponse carries the model's raw text plus usage metadata.
type CompletionResponse struct {
	Text      string
	Model     string
	TokensIn  int
	TokensOut int
}

// Client is implemented by every model provider adapter. The returned text is
// opaque to the caller; interpreting it is the review pipeline's job.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}
