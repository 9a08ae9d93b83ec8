package review

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prreview/prreview/internal/domain"
)

// RawComment is the model's literal structured output for one finding,
// before any validation. The line number is untrusted text.
type RawComment struct {
	LineNumber    string `json:"lineNumber"`
	ReviewComment string `json:"reviewComment"`
}

// UnmarshalJSON accepts lineNumber as either a JSON string or a bare
// number, since models emit both for the same prompt.
func (r *RawComment) UnmarshalJSON(data []byte) error {
	var wire struct {
		LineNumber    json.RawMessage `json:"lineNumber"`
		ReviewComment string          `json:"reviewComment"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.ReviewComment = wire.ReviewComment
	r.LineNumber = ""

	if len(wire.LineNumber) == 0 {
		return nil
	}

	var asString string
	if err := json.Unmarshal(wire.LineNumber, &asString); err == nil {
		r.LineNumber = asString
		return nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(wire.LineNumber, &asNumber); err == nil {
		r.LineNumber = asNumber.String()
		return nil
	}

	return fmt.Errorf("lineNumber is neither string nor number: %s", wire.LineNumber)
}

// PullRequestSource fetches pull request metadata and diff text.
type PullRequestSource interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (domain.PullRequest, error)
	GetDiff(ctx context.Context, pr domain.PullRequest) (string, error)
}

// ReviewSubmitter posts one review carrying all accumulated comments.
type ReviewSubmitter interface {
	CreateReview(ctx context.Context, pr domain.PullRequest, comments []domain.ReviewComment) error
}

// PathFilter decides which changed files are excluded from analysis.
type PathFilter interface {
	Excluded(path string) bool
}

// Redactor scrubs secrets from prompt text before it leaves the process.
type Redactor interface {
	Redact(input string) string
}
