package review

import (
	"fmt"
	"strings"

	"github.com/prreview/prreview/internal/diff"
	"github.com/prreview/prreview/internal/domain"
)

// noDescription marks an absent pull request description so the model
// is never shown an unexplained blank section.
const noDescription = "No description provided."

// BuildPrompt renders the review prompt for one hunk. The output is a
// pure function of its inputs, so identical hunks always produce
// identical prompts.
//
// The hunk is embedded twice: once verbatim for context, then as
// numbered "<line> <content>" pairs. Models lose track of line numbers
// when reading diff format alone; the restatement is what makes the
// returned line numbers trustworthy enough to anchor comments.
func BuildPrompt(path string, hunk diff.Hunk, pr domain.PullRequest) string {
	var b strings.Builder

	b.WriteString("Your task is to review pull requests. Instructions:\n")
	b.WriteString("- Provide the response in the following JSON format: ")
	b.WriteString(`{"reviews": [{"lineNumber": "<line_number>", "reviewComment": "<review comment>"}]}` + "\n")
	b.WriteString("- Do not give positive comments or compliments.\n")
	b.WriteString("- Provide comments and suggestions ONLY if there is something to improve, otherwise \"reviews\" should be an empty array.\n")
	b.WriteString("- Write the comment in GitHub Markdown format.\n")
	b.WriteString("- Use the pull request description only for overall context and only comment the code.\n")
	b.WriteString("- IMPORTANT: NEVER suggest adding comments to the code.\n\n")

	fmt.Fprintf(&b, "Review the following code diff in the file %q and take the pull request title and description into account when writing the response.\n\n", path)

	fmt.Fprintf(&b, "Pull request title: %s\n", pr.Title)
	b.WriteString("Pull request description:\n\n---\n")
	if pr.Description == "" {
		b.WriteString(noDescription)
	} else {
		b.WriteString(pr.Description)
	}
	b.WriteString("\n---\n\n")

	b.WriteString("Git diff to review:\n\n```diff\n")
	b.WriteString(hunk.Raw)
	b.WriteString("\n")
	for _, line := range hunk.Lines {
		fmt.Fprintf(&b, "%d %s\n", promptLineNumber(line), line.Content())
	}
	b.WriteString("```\n")

	return b.String()
}

// promptLineNumber picks the number a comment on this line would use:
// the new-file number where one exists, the old-file number for
// removed lines.
func promptLineNumber(line diff.Line) int {
	if n, ok := line.NewLine(); ok {
		return n
	}
	n, _ := line.OldLine()
	return n
}
