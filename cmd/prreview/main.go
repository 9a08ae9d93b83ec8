package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prreview/prreview/internal/adapter/cli"
	"github.com/prreview/prreview/internal/adapter/git"
	githubadapter "github.com/prreview/prreview/internal/adapter/github"
	"github.com/prreview/prreview/internal/adapter/llm"
	"github.com/prreview/prreview/internal/adapter/llm/anthropic"
	llmhttp "github.com/prreview/prreview/internal/adapter/llm/http"
	"github.com/prreview/prreview/internal/adapter/llm/openai"
	"github.com/prreview/prreview/internal/adapter/llm/static"
	"github.com/prreview/prreview/internal/adapter/observability"
	"github.com/prreview/prreview/internal/config"
	"github.com/prreview/prreview/internal/filter"
	"github.com/prreview/prreview/internal/redaction"
	"github.com/prreview/prreview/internal/usecase/review"
	"github.com/prreview/prreview/internal/version"
)

// The GitHub client serves as both diff source and review sink.
var (
	_ review.PullRequestSource = (*githubadapter.Client)(nil)
	_ review.ReviewSubmitter   = (*githubadapter.Client)(nil)
	_ cli.LocalDiffSource      = (*git.Engine)(nil)
)

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "prreview",
		EnvPrefix:   "PRREVIEW",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	logger := buildLogger(cfg.Observability.Logging)

	var reviewLogger review.Logger
	if logger != nil {
		reviewLogger = observability.NewReviewLogger(logger)
	}

	model, err := buildModelClient(cfg, logger)
	if err != nil {
		return err
	}

	token := cfg.GitHub.Token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	githubClient := githubadapter.NewClient(token)
	if cfg.GitHub.APIBaseURL != "" {
		githubClient.SetBaseURL(cfg.GitHub.APIBaseURL)
	}

	var redactor review.Redactor
	if cfg.Redaction.Enabled {
		redactor = redaction.NewEngine()
	}

	orchestrator := review.NewOrchestrator(review.Config{
		Source:        githubClient,
		Model:         model,
		Submitter:     githubClient,
		Filter:        filter.New(cfg.Review.Exclude),
		Redactor:      redactor,
		Logger:        reviewLogger,
		MaxTokens:     cfg.Review.MaxTokens,
		ValidateLines: cfg.Review.ValidateLines,
	})

	repoDir := cfg.Git.RepositoryDir
	if repoDir == "" {
		repoDir = "."
	}

	root := cli.NewRootCommand(cli.Dependencies{
		PullRequests:     orchestrator,
		Diffs:            orchestrator,
		Local:            git.NewEngine(repoDir),
		DefaultBaseRef:   cfg.Git.BaseRef,
		DefaultEventPath: cfg.GitHub.EventPath,
		Version:          version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

// buildModelClient constructs the configured provider's client with the
// shared HTTP settings applied.
func buildModelClient(cfg config.Config, logger llmhttp.Logger) (llm.Client, error) {
	provider := cfg.ActiveProvider()
	retryConf := buildRetryConfig(cfg.HTTP)
	timeout := parseDuration(cfg.HTTP.Timeout, 60*time.Second)

	switch cfg.Provider {
	case "openai":
		if provider.APIKey == "" {
			return nil, fmt.Errorf("providers.openai.apiKey is required (or set PRREVIEW_PROVIDERS_OPENAI_APIKEY)")
		}
		client := openai.NewClient(provider.APIKey, provider.Model)
		client.SetTimeout(timeout)
		client.SetRetryConfig(retryConf)
		if provider.BaseURL != "" {
			client.SetBaseURL(provider.BaseURL)
		}
		if logger != nil {
			client.SetLogger(logger)
		}
		return client, nil

	case "anthropic":
		if provider.APIKey == "" {
			return nil, fmt.Errorf("providers.anthropic.apiKey is required (or set PRREVIEW_PROVIDERS_ANTHROPIC_APIKEY)")
		}
		client := anthropic.NewClient(provider.APIKey, provider.Model)
		client.SetTimeout(timeout)
		client.SetRetryConfig(retryConf)
		if provider.BaseURL != "" {
			client.SetBaseURL(provider.BaseURL)
		}
		if logger != nil {
			client.SetLogger(logger)
		}
		return client, nil

	case "static":
		return static.NewClient(provider.Model), nil

	default:
		return nil, fmt.Errorf("unknown provider %q (expected openai, anthropic or static)", cfg.Provider)
	}
}

func buildRetryConfig(cfg config.HTTPConfig) llmhttp.RetryConfig {
	conf := llmhttp.DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		conf.MaxRetries = cfg.MaxRetries
	}
	conf.InitialBackoff = parseDuration(cfg.InitialBackoff, conf.InitialBackoff)
	conf.MaxBackoff = parseDuration(cfg.MaxBackoff, conf.MaxBackoff)
	if cfg.BackoffMultiplier > 0 {
		conf.Multiplier = cfg.BackoffMultiplier
	}
	return conf
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("warning: invalid duration %q, using %s", s, fallback)
		return fallback
	}
	return parsed
}

func buildLogger(cfg config.LoggingConfig) llmhttp.Logger {
	level := llmhttp.LevelInfo
	switch cfg.Level {
	case "debug":
		level = llmhttp.LevelDebug
	case "error":
		level = llmhttp.LevelError
	}

	format := llmhttp.FormatHuman
	if cfg.Format == "json" {
		format = llmhttp.FormatJSON
	}

	return llmhttp.NewDefaultLogger(level, format, cfg.RedactAPIKeys)
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "prreview"))
	}
	return paths
}
