package review

import (
	"context"
	"fmt"

	"github.com/prreview/prreview/internal/adapter/llm"
	"github.com/prreview/prreview/internal/diff"
	"github.com/prreview/prreview/internal/domain"
	"github.com/prreview/prreview/internal/usecase/skip"
)

// defaultMaxTokens bounds the model's output per hunk. Review comments
// are short; 700 tokens is enough for several findings on one hunk.
const defaultMaxTokens = 700

// Config wires the orchestrator's collaborators. Source, Model and
// Submitter are required for ReviewPullRequest; ReviewDiff needs only
// Model. Filter, Redactor and Logger are optional.
type Config struct {
	Source    PullRequestSource
	Model     llm.Client
	Submitter ReviewSubmitter
	Filter    PathFilter
	Redactor  Redactor
	Logger    Logger

	// MaxTokens caps model output per hunk; zero means the default.
	MaxTokens int

	// ValidateLines drops comments whose line number does not land on
	// a line the hunk touches. Off by default: the model-declared
	// number is trusted, and GitHub rejects misplaced comments at
	// submission time anyway.
	ValidateLines bool
}

// Orchestrator drives the per-hunk review loop and the surrounding
// fetch/submit lifecycle.
type Orchestrator struct {
	cfg Config
}

// NewOrchestrator constructs an orchestrator from explicit collaborators.
func NewOrchestrator(cfg Config) *Orchestrator {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &Orchestrator{cfg: cfg}
}

// ReviewPullRequest runs one full review: fetch metadata and diff,
// honor skip triggers, review every hunk, and submit the accumulated
// comments as a single review if any were produced.
//
// Metadata and diff failures abort the run. A skip trigger or an empty
// comment list ends the run successfully with no submission.
func (o *Orchestrator) ReviewPullRequest(ctx context.Context, owner, repo string, number int) error {
	pr, err := o.cfg.Source.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return fmt.Errorf("fetch pull request: %w", err)
	}

	if result := skip.Check(skip.CheckRequest{PRTitle: pr.Title, PRDescription: pr.Description}); result.ShouldSkip {
		o.logInfo(ctx, "skip trigger found, not reviewing", map[string]interface{}{
			"pr":     pr.Number,
			"source": result.Reason,
		})
		return nil
	}

	diffText, err := o.cfg.Source.GetDiff(ctx, pr)
	if err != nil {
		return fmt.Errorf("fetch diff: %w", err)
	}
	if diffText == "" {
		return fmt.Errorf("pull request %d has an empty diff", pr.Number)
	}

	comments, err := o.ReviewDiff(ctx, pr, diffText)
	if err != nil {
		return err
	}

	if len(comments) == 0 {
		o.logInfo(ctx, "no review comments produced", map[string]interface{}{"pr": pr.Number})
		return nil
	}

	if err := o.cfg.Submitter.CreateReview(ctx, pr, comments); err != nil {
		return fmt.Errorf("submit review: %w", err)
	}

	o.logInfo(ctx, "review submitted", map[string]interface{}{
		"pr":       pr.Number,
		"comments": len(comments),
	})
	return nil
}

// ReviewDiff parses diffText and reviews every hunk of every analyzable
// file, returning the accumulated comments in file-then-hunk order.
//
// A structurally invalid diff is an error for the whole run. A failed
// model call or unparseable response costs only that hunk's comments;
// the loop continues with the next hunk.
func (o *Orchestrator) ReviewDiff(ctx context.Context, pr domain.PullRequest, diffText string) ([]domain.ReviewComment, error) {
	files, err := diff.Parse(diffText)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	var comments []domain.ReviewComment
	for _, file := range files {
		if file.IsDeleted() {
			continue
		}
		if o.cfg.Filter != nil && o.cfg.Filter.Excluded(file.Path) {
			o.logInfo(ctx, "file excluded from review", map[string]interface{}{"path": file.Path})
			continue
		}

		for _, hunk := range file.Hunks {
			comments = append(comments, o.reviewHunk(ctx, pr, file, hunk)...)
		}
	}
	return comments, nil
}

// reviewHunk runs one prompt/response/map cycle. Every failure path
// returns nil so a bad hunk never aborts the run.
func (o *Orchestrator) reviewHunk(ctx context.Context, pr domain.PullRequest, file diff.FileDiff, hunk diff.Hunk) []domain.ReviewComment {
	prompt := BuildPrompt(file.Path, hunk, pr)
	if o.cfg.Redactor != nil {
		prompt = o.cfg.Redactor.Redact(prompt)
	}

	resp, err := o.cfg.Model.Complete(ctx, llm.CompletionRequest{
		Prompt:    prompt,
		MaxTokens: o.cfg.MaxTokens,
	})
	if err != nil {
		o.logWarning(ctx, "model call failed, skipping hunk", map[string]interface{}{
			"path":  file.Path,
			"error": err.Error(),
		})
		return nil
	}

	raw, err := Interpret(resp.Text)
	if err != nil {
		o.logWarning(ctx, "unparseable model response, skipping hunk", map[string]interface{}{
			"path":     file.Path,
			"response": resp.Text,
		})
		return nil
	}

	return MapComments(file, hunk, raw, o.cfg.ValidateLines)
}

func (o *Orchestrator) logInfo(ctx context.Context, message string, fields map[string]interface{}) {
	if o.cfg.Logger != nil {
		o.cfg.Logger.LogInfo(ctx, message, fields)
	}
}

func (o *Orchestrator) logWarning(ctx context.Context, message string, fields map[string]interface{}) {
	if o.cfg.Logger != nil {
		o.cfg.Logger.LogWarning(ctx, message, fields)
	}
}
