package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnvString(t *testing.T) {
	os.Setenv("TEST_API_KEY", "secret-key-123")
	os.Setenv("TEST_PATH", "/path/to/data")
	defer os.Unsetenv("TEST_API_KEY")
	defer os.Unsetenv("TEST_PATH")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "expand ${VAR} syntax",
			input:    "${TEST_API_KEY}",
			expected: "secret-key-123",
		},
		{
			name:     "expand $VAR syntax",
			input:    "$TEST_API_KEY",
			expected: "secret-key-123",
		},
		{
			name:     "expand in middle of string",
			input:    "key:${TEST_API_KEY}:end",
			expected: "key:secret-key-123:end",
		},
		{
			name:     "expand multiple variables",
			input:    "${TEST_API_KEY}:${TEST_PATH}",
			expected: "secret-key-123:/path/to/data",
		},
		{
			name:     "leave non-existent var unchanged",
			input:    "${NONEXISTENT_VAR}",
			expected: "${NONEXISTENT_VAR}",
		},
		{
			name:     "handle empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "handle string without variables",
			input:    "plain-text",
			expected: "plain-text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvString(tt.input))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoaderOptions{ConfigPaths: []string{t.TempDir()}})

	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Providers["openai"].Model)
	assert.Equal(t, "60s", cfg.HTTP.Timeout)
	assert.Equal(t, 3, cfg.HTTP.MaxRetries)
	assert.Equal(t, 700, cfg.Review.MaxTokens)
	assert.False(t, cfg.Review.ValidateLines)
	assert.True(t, cfg.Redaction.Enabled)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, "human", cfg.Observability.Logging.Format)
	assert.True(t, cfg.Observability.Logging.RedactAPIKeys)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	contents := `provider: anthropic
providers:
  anthropic:
    model: claude-sonnet-4-20250514
    apiKey: ${TEST_ANTHROPIC_KEY}
review:
  exclude:
    - "*.md"
    - "dist/**"
  maxTokens: 500
github:
  token: ${TEST_GH_TOKEN}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prreview.yaml"), []byte(contents), 0o600))

	os.Setenv("TEST_ANTHROPIC_KEY", "sk-ant-test")
	os.Setenv("TEST_GH_TOKEN", "ghs_test")
	defer os.Unsetenv("TEST_ANTHROPIC_KEY")
	defer os.Unsetenv("TEST_GH_TOKEN")

	cfg, err := Load(LoaderOptions{ConfigPaths: []string{dir}})

	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "sk-ant-test", cfg.ActiveProvider().APIKey)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.ActiveProvider().Model)
	assert.Equal(t, []string{"*.md", "dist/**"}, cfg.Review.Exclude)
	assert.Equal(t, 500, cfg.Review.MaxTokens)
	assert.Equal(t, "ghs_test", cfg.GitHub.Token)
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prreview.yaml"), []byte("provider: [unterminated"), 0o600))

	_, err := Load(LoaderOptions{ConfigPaths: []string{dir}})

	require.Error(t, err)
}
