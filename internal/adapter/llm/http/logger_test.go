package http_test

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	llmhttp "github.com/prreview/prreview/internal/adapter/llm/http"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestDefaultLogger_RedactAPIKey(t *testing.T) {
	l := llmhttp.NewDefaultLogger(llmhttp.LevelInfo, llmhttp.FormatHuman, true)

	assert.Equal(t, "[REDACTED-6789]", l.RedactAPIKey("sk-123456789"))
	assert.Equal(t, "[REDACTED]", l.RedactAPIKey("abc"))

	open := llmhttp.NewDefaultLogger(llmhttp.LevelInfo, llmhttp.FormatHuman, false)
	assert.Equal(t, "sk-123456789", open.RedactAPIKey("sk-123456789"))
}

func TestDefaultLogger_LevelFiltering(t *testing.T) {
	buf := captureLog(t)
	l := llmhttp.NewDefaultLogger(llmhttp.LevelError, llmhttp.FormatHuman, true)

	l.LogInfo(context.Background(), "should be suppressed", nil)
	assert.Empty(t, buf.String())

	l.LogWarning(context.Background(), "warnings always emit", nil)
	assert.Contains(t, buf.String(), "warnings always emit")
}

func TestDefaultLogger_HumanFields(t *testing.T) {
	buf := captureLog(t)
	l := llmhttp.NewDefaultLogger(llmhttp.LevelInfo, llmhttp.FormatHuman, true)

	l.LogWarning(context.Background(), "unparseable response", map[string]any{
		"path": "a.go",
		"hunk": 2,
	})

	out := buf.String()
	assert.Contains(t, out, "[WARN] unparseable response")
	assert.Contains(t, out, "hunk=2, path=a.go")
}

func TestDefaultLogger_JSONFormat(t *testing.T) {
	buf := captureLog(t)
	l := llmhttp.NewDefaultLogger(llmhttp.LevelInfo, llmhttp.FormatJSON, true)

	l.LogInfo(context.Background(), "review complete", map[string]any{"comments": 3})

	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"comments":3`)
	assert.Contains(t, out, `"message":"review complete"`)
}
