// Package openai implements the model client against the OpenAI Chat
// Completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prreview/prreview/internal/adapter/llm"
	llmhttp "github.com/prreview/prreview/internal/adapter/llm/http"
)

const (
	providerName   = "openai"
	defaultBaseURL = "https://api.openai.com"
	defaultTimeout = 60 * time.Second

	// systemPrompt keeps the model in reviewer mode regardless of the
	// per-hunk prompt content.
	systemPrompt = "You are an expert code reviewer. Respond only with the requested JSON object."
)

// Client is an HTTP client for the OpenAI API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	retryConf  llmhttp.RetryConfig
	logger     llmhttp.Logger
}

// NewClient creates an OpenAI client for the given model.
func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryConf:  llmhttp.DefaultRetryConfig(),
	}
}

// SetBaseURL overrides the API base URL (for testing).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// SetTimeout sets the HTTP timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// SetRetryConfig overrides the retry behavior.
func (c *Client) SetRetryConfig(conf llmhttp.RetryConfig) {
	c.retryConf = conf
}

// SetLogger wires up structured request/response logging.
func (c *Client) SetLogger(logger llmhttp.Logger) {
	c.logger = logger
}

// Complete sends one prompt and returns the model's raw text.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	body := ChatCompletionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: 0.2,
		MaxTokens:   req.MaxTokens,
	}
	// gpt-4o family supports forced JSON output; older models reject it.
	if supportsJSONMode(c.model) {
		body.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return llm.CompletionResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	if c.logger != nil {
		c.logger.LogRequest(ctx, llmhttp.RequestLog{
			Provider:    providerName,
			Model:       c.model,
			Timestamp:   time.Now(),
			PromptChars: len(req.Prompt),
			APIKey:      c.apiKey,
		})
	}

	start := time.Now()
	url := c.baseURL + "/v1/chat/completions"

	var resp *http.Response
	err = llmhttp.RetryWithBackoff(ctx, func(ctx context.Context) error {
		httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
		if reqErr != nil {
			return &llmhttp.Error{Type: llmhttp.ErrTypeUnknown, Message: reqErr.Error(), Provider: providerName}
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		var callErr error
		resp, callErr = c.httpClient.Do(httpReq)
		if callErr != nil {
			return &llmhttp.Error{Type: llmhttp.ErrTypeTimeout, Message: callErr.Error(), Retryable: true, Provider: providerName}
		}
		if resp.StatusCode >= 400 {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return mapErrorResponse(resp.StatusCode, bodyBytes)
		}
		return nil
	}, c.retryConf)

	if err != nil {
		c.logError(ctx, err, time.Since(start))
		return llm.CompletionResponse{}, err
	}
	defer resp.Body.Close()

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return llm.CompletionResponse{}, fmt.Errorf("parse response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return llm.CompletionResponse{}, fmt.Errorf("openai: response contained no choices")
	}

	if c.logger != nil {
		c.logger.LogResponse(ctx, llmhttp.ResponseLog{
			Provider:   providerName,
			Model:      completion.Model,
			Timestamp:  time.Now(),
			Duration:   time.Since(start),
			TokensIn:   completion.Usage.PromptTokens,
			TokensOut:  completion.Usage.CompletionTokens,
			StatusCode: resp.StatusCode,
		})
	}

	return llm.CompletionResponse{
		Text:      completion.Choices[0].Message.Content,
		Model:     completion.Model,
		TokensIn:  completion.Usage.PromptTokens,
		TokensOut: completion.Usage.CompletionTokens,
	}, nil
}

func (c *Client) logError(ctx context.Context, err error, duration time.Duration) {
	if c.logger == nil {
		return
	}
	entry := llmhttp.ErrorLog{
		Provider:  providerName,
		Model:     c.model,
		Timestamp: time.Now(),
		Duration:  duration,
		Err:       err,
	}
	if apiErr, ok := err.(*llmhttp.Error); ok {
		entry.StatusCode = apiErr.StatusCode
		entry.Retryable = apiErr.Retryable
	}
	c.logger.LogError(ctx, entry)
}

func supportsJSONMode(model string) bool {
	m := strings.ToLower(model)
	return strings.HasPrefix(m, "gpt-4o") || strings.HasPrefix(m, "gpt-4.1") || strings.HasPrefix(m, "gpt-4-turbo")
}

// mapErrorResponse converts an API error status to a typed error.
func mapErrorResponse(statusCode int, body []byte) error {
	message := fmt.Sprintf("HTTP %d", statusCode)
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &llmhttp.Error{Type: llmhttp.ErrTypeAuthentication, Message: message, StatusCode: statusCode, Provider: providerName}
	case http.StatusTooManyRequests:
		return &llmhttp.Error{Type: llmhttp.ErrTypeRateLimit, Message: message, StatusCode: statusCode, Retryable: true, Provider: providerName}
	case http.StatusNotFound:
		return &llmhttp.Error{Type: llmhttp.ErrTypeNotFound, Message: message, StatusCode: statusCode, Provider: providerName}
	case http.StatusBadRequest:
		return &llmhttp.Error{Type: llmhttp.ErrTypeInvalidRequest, Message: message, StatusCode: statusCode, Provider: providerName}
	case http.StatusInternalServerError, http.StatusServiceUnavailable:
		return &llmhttp.Error{Type: llmhttp.ErrTypeServiceUnavailable, Message: message, StatusCode: statusCode, Retryable: true, Provider: providerName}
	default:
		return &llmhttp.Error{Type: llmhttp.ErrTypeUnknown, Message: message, StatusCode: statusCode, Provider: providerName}
	}
}
