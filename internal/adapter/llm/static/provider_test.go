package static_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prreview/prreview/internal/adapter/llm"
	"github.com/prreview/prreview/internal/adapter/llm/static"
)

func TestClient_Complete_ReturnsCannedResponse(t *testing.T) {
	client := static.NewClient("static-model")

	result, err := client.Complete(context.Background(), llm.CompletionRequest{Prompt: "anything", MaxTokens: 100})

	require.NoError(t, err)
	assert.Equal(t, `{"reviews": []}`, result.Text)
	assert.Equal(t, "static-model", result.Model)
}

func TestClient_Complete_Override(t *testing.T) {
	client := static.NewClient("static-model")
	client.SetResponse(`{"reviews": [{"lineNumber": "3", "reviewComment": "check this"}]}`)

	result, err := client.Complete(context.Background(), llm.CompletionRequest{Prompt: "p", MaxTokens: 100})

	require.NoError(t, err)
	assert.Contains(t, result.Text, "check this")
}

func TestClient_Complete_CancelledContext(t *testing.T) {
	client := static.NewClient("static-model")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, llm.CompletionRequest{Prompt: "p", MaxTokens: 100})

	require.Error(t, err)
}
