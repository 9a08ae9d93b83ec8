package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	llmhttp "github.com/prreview/prreview/internal/adapter/llm/http"
	"github.com/prreview/prreview/internal/domain"
)

const (
	defaultBaseURL        = "https://api.github.com"
	defaultTimeout        = 30 * time.Second
	defaultMaxRetries     = 3
	defaultInitialBackoff = 2 * time.Second

	acceptJSON = "application/vnd.github+json"
	acceptDiff = "application/vnd.github.v3.diff"
)

// Client is an HTTP client for the GitHub pull request API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	retryConf  llmhttp.RetryConfig
}

// NewClient creates a new GitHub API client with the given token.
// The token should be a personal access token or GITHUB_TOKEN from Actions.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryConf: llmhttp.RetryConfig{
			MaxRetries:     defaultMaxRetries,
			InitialBackoff: defaultInitialBackoff,
			MaxBackoff:     32 * time.Second,
			Multiplier:     2.0,
		},
	}
}

// SetBaseURL sets a custom base URL (for testing).
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

// GetPullRequest fetches a pull request's metadata.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (domain.PullRequest, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", c.baseURL, owner, repo, number)

	body, err := c.do(ctx, http.MethodGet, url, acceptJSON, nil)
	if err != nil {
		return domain.PullRequest{}, err
	}

	var pull pullResponse
	if err := json.Unmarshal(body, &pull); err != nil {
		return domain.PullRequest{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return domain.PullRequest{
		Owner:       owner,
		Repo:        repo,
		Number:      pull.Number,
		Title:       pull.Title,
		Description: pull.Body,
		HeadSHA:     pull.Head.SHA,
	}, nil
}

// GetDiff fetches the pull request's unified diff text.
func (c *Client) GetDiff(ctx context.Context, pr domain.PullRequest) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", c.baseURL, pr.Owner, pr.Repo, pr.Number)

	body, err := c.do(ctx, http.MethodGet, url, acceptDiff, nil)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// CreateReview posts a single COMMENT review carrying the given inline
// comments. Callers are expected to skip the call entirely when there
// are no comments.
func (c *Client) CreateReview(ctx context.Context, pr domain.PullRequest, comments []domain.ReviewComment) error {
	reqBody := CreateReviewRequest{
		CommitID: pr.HeadSHA,
		Event:    EventComment,
		Comments: buildReviewComments(comments),
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/reviews", c.baseURL, pr.Owner, pr.Repo, pr.Number)

	body, err := c.do(ctx, http.MethodPost, url, acceptJSON, jsonData)
	if err != nil {
		return err
	}

	var reviewResp CreateReviewResponse
	if err := json.Unmarshal(body, &reviewResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// buildReviewComments converts inline comments to the API shape.
// Comments always target the new side of the diff.
func buildReviewComments(comments []domain.ReviewComment) []APIReviewComment {
	out := make([]APIReviewComment, 0, len(comments))
	for _, comment := range comments {
		out = append(out, APIReviewComment{
			Path: comment.Path,
			Line: comment.Line,
			Side: "RIGHT",
			Body: comment.Body,
		})
	}
	return out
}

// do executes one API call with retry and returns the response body.
func (c *Client) do(ctx context.Context, method, url, accept string, payload []byte) ([]byte, error) {
	var body []byte

	err := llmhttp.RetryWithBackoff(ctx, func(ctx context.Context) error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, reqErr := http.NewRequestWithContext(ctx, method, url, reader)
		if reqErr != nil {
			return &llmhttp.Error{
				Type:      llmhttp.ErrTypeUnknown,
				Message:   reqErr.Error(),
				Retryable: false,
				Provider:  providerName,
			}
		}

		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", accept)
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, callErr := c.httpClient.Do(req)
		if callErr != nil {
			return &llmhttp.Error{
				Type:      llmhttp.ErrTypeTimeout,
				Message:   callErr.Error(),
				Retryable: true,
				Provider:  providerName,
			}
		}
		defer resp.Body.Close()

		bodyBytes, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return &llmhttp.Error{
				Type:       llmhttp.ErrTypeUnknown,
				Message:    fmt.Sprintf("HTTP %d (failed to read response: %v)", resp.StatusCode, readErr),
				StatusCode: resp.StatusCode,
				Retryable:  resp.StatusCode >= 500,
				Provider:   providerName,
			}
		}

		if resp.StatusCode >= 400 {
			return MapHTTPError(resp.StatusCode, bodyBytes)
		}

		body = bodyBytes
		return nil
	}, c.retryConf)

	if err != nil {
		return nil, err
	}

	return body, nil
}
