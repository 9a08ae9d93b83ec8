package review_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prreview/prreview/internal/diff"
	"github.com/prreview/prreview/internal/domain"
	"github.com/prreview/prreview/internal/usecase/review"
)

func promptHunk() diff.Hunk {
	return diff.Hunk{
		OldStart: 10,
		OldCount: 2,
		NewStart: 10,
		NewCount: 2,
		Raw:      "@@ -10,2 +10,2 @@\n-\told()\n+\tnew()\n \tdone()",
		Lines: []diff.Line{
			diff.RemovedLine(10, "\told()"),
			diff.AddedLine(10, "\tnew()"),
			diff.ContextLine(11, 11, "\tdone()"),
		},
	}
}

func promptPR() domain.PullRequest {
	return domain.PullRequest{
		Owner:       "octocat",
		Repo:        "hello-world",
		Number:      42,
		Title:       "Replace old with new",
		Description: "Swaps the implementation.",
	}
}

func TestBuildPrompt_EmbedsContext(t *testing.T) {
	prompt := review.BuildPrompt("pkg/handler.go", promptHunk(), promptPR())

	assert.Contains(t, prompt, `"pkg/handler.go"`)
	assert.Contains(t, prompt, "Pull request title: Replace old with new")
	assert.Contains(t, prompt, "Swaps the implementation.")
	assert.Contains(t, prompt, `{"reviews": [{"lineNumber": "<line_number>", "reviewComment": "<review comment>"}]}`)
	assert.Contains(t, prompt, "NEVER suggest adding comments")
	assert.Contains(t, prompt, "Do not give positive comments")
}

func TestBuildPrompt_EmbedsRawHunkAndRestatement(t *testing.T) {
	prompt := review.BuildPrompt("pkg/handler.go", promptHunk(), promptPR())

	assert.Contains(t, prompt, "@@ -10,2 +10,2 @@")
	assert.Contains(t, prompt, "-\told()")

	// Restated lines carry the numbers a comment would anchor to:
	// new-side numbers for added and context lines, the old-side
	// number for removed lines.
	assert.Contains(t, prompt, "10 \told()")
	assert.Contains(t, prompt, "10 \tnew()")
	assert.Contains(t, prompt, "11 \tdone()")
}

func TestBuildPrompt_MissingDescription(t *testing.T) {
	pr := promptPR()
	pr.Description = ""

	prompt := review.BuildPrompt("pkg/handler.go", promptHunk(), pr)

	assert.Contains(t, prompt, "No description provided.")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	first := review.BuildPrompt("pkg/handler.go", promptHunk(), promptPR())
	second := review.BuildPrompt("pkg/handler.go", promptHunk(), promptPR())

	assert.Equal(t, first, second)
}
