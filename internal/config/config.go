// Package config defines the application configuration and its loader.
package config

// Config represents the full application configuration.
type Config struct {
	// Provider selects which model client reviews hunks.
	Provider      string                    `yaml:"provider"`
	Providers     map[string]ProviderConfig `yaml:"providers"`
	HTTP          HTTPConfig                `yaml:"http"`
	GitHub        GitHubConfig              `yaml:"github"`
	Git           GitConfig                 `yaml:"git"`
	Review        ReviewConfig              `yaml:"review"`
	Redaction     RedactionConfig           `yaml:"redaction"`
	Observability ObservabilityConfig       `yaml:"observability"`
}

// ProviderConfig configures a single model provider.
type ProviderConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"apiKey"`

	// BaseURL overrides the provider endpoint (proxies, testing).
	BaseURL string `yaml:"baseURL,omitempty"`
}

// HTTPConfig holds global HTTP client settings. Durations are strings
// so they can come from environment variables unchanged.
type HTTPConfig struct {
	Timeout           string  `yaml:"timeout"`
	MaxRetries        int     `yaml:"maxRetries"`
	InitialBackoff    string  `yaml:"initialBackoff"`
	MaxBackoff        string  `yaml:"maxBackoff"`
	BackoffMultiplier float64 `yaml:"backoffMultiplier"`
}

// GitHubConfig configures the hosting API client.
type GitHubConfig struct {
	Token string `yaml:"token"`

	// EventPath points at the Actions event payload. Empty means the
	// GITHUB_EVENT_PATH environment variable.
	EventPath string `yaml:"eventPath"`

	// APIBaseURL overrides the API endpoint (GitHub Enterprise, testing).
	APIBaseURL string `yaml:"apiBaseURL,omitempty"`
}

// GitConfig configures local repository reviews.
type GitConfig struct {
	RepositoryDir string `yaml:"repositoryDir"`
	BaseRef       string `yaml:"baseRef"`
}

// ReviewConfig configures the review pipeline itself.
type ReviewConfig struct {
	// Exclude lists glob patterns for files that are never reviewed.
	Exclude []string `yaml:"exclude"`

	// MaxTokens caps model output per hunk.
	MaxTokens int `yaml:"maxTokens"`

	// ValidateLines drops comments whose line number is outside the
	// hunk instead of trusting the model.
	ValidateLines bool `yaml:"validateLines"`
}

// RedactionConfig configures secret scrubbing of prompt text.
type RedactionConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures request/response logging.
type LoggingConfig struct {
	Level         string `yaml:"level"`  // debug, info, error
	Format        string `yaml:"format"` // json, human
	RedactAPIKeys bool   `yaml:"redactAPIKeys"`
}

// ActiveProvider returns the selected provider's settings.
func (c Config) ActiveProvider() ProviderConfig {
	return c.Providers[c.Provider]
}
