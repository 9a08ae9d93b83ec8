package github

// GitHub REST API types for pull requests and reviews.
// See: https://docs.github.com/en/rest/pulls/reviews#create-a-review-for-a-pull-request

// ReviewEvent represents the action to take when submitting a review.
type ReviewEvent string

const (
	// EventComment submits the review without approval.
	EventComment ReviewEvent = "COMMENT"

	// EventApprove approves the pull request.
	EventApprove ReviewEvent = "APPROVE"

	// EventRequestChanges requests changes to the pull request.
	EventRequestChanges ReviewEvent = "REQUEST_CHANGES"
)

// CreateReviewRequest is the request body for POST /repos/{owner}/{repo}/pulls/{pull_number}/reviews.
type CreateReviewRequest struct {
	// CommitID is the SHA of the commit to review (must be the head commit of the PR).
	CommitID string `json:"commit_id,omitempty"`

	// Event is the review action: APPROVE, REQUEST_CHANGES, or COMMENT.
	Event ReviewEvent `json:"event"`

	// Body is the review summary comment.
	Body string `json:"body,omitempty"`

	// Comments are the inline review comments.
	Comments []APIReviewComment `json:"comments,omitempty"`
}

// APIReviewComment is an inline comment anchored to a line in the diff.
type APIReviewComment struct {
	// Path is the relative path of the file to comment on.
	Path string `json:"path"`

	// Line is the line number in the file's new version.
	Line int `json:"line"`

	// Side is which side of the split diff the line belongs to.
	// Additions and context lines live on RIGHT.
	Side string `json:"side"`

	// Body is the comment text (supports GitHub-flavored Markdown).
	Body string `json:"body"`
}

// CreateReviewResponse is the response from the create-review endpoint.
type CreateReviewResponse struct {
	ID          int64  `json:"id"`
	NodeID      string `json:"node_id"`
	User        User   `json:"user"`
	Body        string `json:"body"`
	State       string `json:"state"`
	HTMLURL     string `json:"html_url"`
	SubmittedAt string `json:"submitted_at"`
}

// User represents a GitHub user in API responses.
type User struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
	Type  string `json:"type"` // "User" or "Bot"
}

// pullResponse is the subset of GET /repos/{owner}/{repo}/pulls/{pull_number}
// that the reviewer needs.
type pullResponse struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Head   struct {
		SHA string `json:"sha"`
	} `json:"head"`
}

// ErrorResponse represents an error body from the GitHub API.
type ErrorResponse struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
	Errors           []struct {
		Resource string `json:"resource"`
		Field    string `json:"field"`
		Code     string `json:"code"`
		Message  string `json:"message"`
	} `json:"errors,omitempty"`
}
