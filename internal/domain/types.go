package domain

// PullRequest is the immutable pull-request context for one review run.
// It is sourced once at startup and never mutated afterwards.
type PullRequest struct {
	Owner       string
	Repo        string
	Number      int
	Title       string
	Description string
	HeadSHA     string
}

// ReviewComment is a single piece of review feedback anchored to a file path
// and a new-side line number. It is the only shape that crosses the
// review-submission boundary.
type ReviewComment struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Body string `json:"body"`
}
