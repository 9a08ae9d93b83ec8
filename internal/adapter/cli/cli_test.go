package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prreview/prreview/internal/adapter/cli"
	"github.com/prreview/prreview/internal/domain"
)

type mockPRReviewer struct {
	owner  string
	repo   string
	number int
	calls  int
	err    error
}

func (m *mockPRReviewer) ReviewPullRequest(ctx context.Context, owner, repo string, number int) error {
	m.owner = owner
	m.repo = repo
	m.number = number
	m.calls++
	return m.err
}

type mockDiffReviewer struct {
	comments []domain.ReviewComment
	err      error
	diffText string
}

func (m *mockDiffReviewer) ReviewDiff(ctx context.Context, pr domain.PullRequest, diffText string) ([]domain.ReviewComment, error) {
	m.diffText = diffText
	return m.comments, m.err
}

type mockLocalSource struct {
	diffText string
	diffErr  error
	branch   string
	base     string
	target   string
}

func (m *mockLocalSource) DiffText(ctx context.Context, baseRef, targetRef string) (string, error) {
	m.base = baseRef
	m.target = targetRef
	return m.diffText, m.diffErr
}

func (m *mockLocalSource) CurrentBranch(ctx context.Context) (string, error) {
	return m.branch, nil
}

func execute(t *testing.T, deps cli.Dependencies, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	deps.Args = cli.Arguments{OutWriter: &out, ErrWriter: &out}
	root := cli.NewRootCommand(deps)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, cli.Dependencies{Version: "v1.2.3"}, "--version")

	if !errors.Is(err, cli.ErrVersionRequested) {
		t.Fatalf("expected ErrVersionRequested, got %v", err)
	}
	if out != "v1.2.3\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestReviewCommandWithExplicitTarget(t *testing.T) {
	reviewer := &mockPRReviewer{}

	_, err := execute(t, cli.Dependencies{PullRequests: reviewer},
		"review", "--owner", "octocat", "--repo", "hello-world", "--pr", "42")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reviewer.calls != 1 || reviewer.owner != "octocat" || reviewer.repo != "hello-world" || reviewer.number != 42 {
		t.Fatalf("unexpected reviewer call: %+v", reviewer)
	}
}

func TestReviewCommandFromEventPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	payload := `{
		"action": "opened",
		"number": 7,
		"repository": {"name": "hello-world", "owner": {"login": "octocat"}}
	}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write event: %v", err)
	}

	reviewer := &mockPRReviewer{}
	_, err := execute(t, cli.Dependencies{PullRequests: reviewer},
		"review", "--event-path", path)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reviewer.calls != 1 || reviewer.owner != "octocat" || reviewer.number != 7 {
		t.Fatalf("unexpected reviewer call: %+v", reviewer)
	}
}

func TestReviewCommandUnsupportedActionExitsSilently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	payload := `{
		"action": "closed",
		"number": 7,
		"repository": {"name": "hello-world", "owner": {"login": "octocat"}}
	}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write event: %v", err)
	}

	reviewer := &mockPRReviewer{}
	out, err := execute(t, cli.Dependencies{PullRequests: reviewer},
		"review", "--event-path", path)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reviewer.calls != 0 {
		t.Fatal("expected no review for unsupported action")
	}
	if out == "" {
		t.Fatal("expected a note about the skipped event")
	}
}

func TestReviewCommandWithoutTargetFails(t *testing.T) {
	reviewer := &mockPRReviewer{}

	_, err := execute(t, cli.Dependencies{PullRequests: reviewer},
		"review", "--event-path", filepath.Join(t.TempDir(), "missing.json"))

	if err == nil {
		t.Fatal("expected error when no target can be resolved")
	}
}

func TestLocalCommandJSONOutput(t *testing.T) {
	local := &mockLocalSource{diffText: "diff --git a/a b/a\n", branch: "feature"}
	diffs := &mockDiffReviewer{comments: []domain.ReviewComment{
		{Path: "main.go", Line: 3, Body: "possible bug"},
	}}

	out, err := execute(t, cli.Dependencies{
		Diffs:          diffs,
		Local:          local,
		DefaultBaseRef: "main",
	}, "local", "--json")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local.base != "main" || local.target != "feature" {
		t.Fatalf("unexpected refs: base=%q target=%q", local.base, local.target)
	}

	var decoded []domain.ReviewComment
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(decoded) != 1 || decoded[0].Path != "main.go" {
		t.Fatalf("unexpected findings: %+v", decoded)
	}
}

func TestLocalCommandNoChanges(t *testing.T) {
	local := &mockLocalSource{diffText: "", branch: "feature"}
	diffs := &mockDiffReviewer{}

	out, err := execute(t, cli.Dependencies{
		Diffs:          diffs,
		Local:          local,
		DefaultBaseRef: "main",
	}, "local")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == "" {
		t.Fatal("expected a no-changes note")
	}
	if diffs.diffText != "" {
		t.Fatal("expected no review for an empty diff")
	}
}

func TestLocalCommandExplicitTarget(t *testing.T) {
	local := &mockLocalSource{diffText: "diff --git a/a b/a\n", branch: "ignored"}
	diffs := &mockDiffReviewer{}

	_, err := execute(t, cli.Dependencies{
		Diffs:          diffs,
		Local:          local,
		DefaultBaseRef: "main",
	}, "local", "feature-2", "--base", "develop", "--json")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local.base != "develop" || local.target != "feature-2" {
		t.Fatalf("unexpected refs: base=%q target=%q", local.base, local.target)
	}
}
