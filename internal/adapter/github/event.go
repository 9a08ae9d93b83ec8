package github

import (
	"encoding/json"
	"fmt"
	"os"
)

// Event is the subset of a GitHub Actions pull_request event payload
// that the reviewer needs.
type Event struct {
	Action      string `json:"action"`
	Number      int    `json:"number"`
	PullRequest struct {
		Number int `json:"number"`
		Head   struct {
			SHA string `json:"sha"`
		} `json:"head"`
	} `json:"pull_request"`
	Repository struct {
		Name  string `json:"name"`
		Owner struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"repository"`
}

// LoadEvent reads and parses the Actions event payload from path.
// When path is empty it falls back to GITHUB_EVENT_PATH.
func LoadEvent(path string) (Event, error) {
	if path == "" {
		path = os.Getenv("GITHUB_EVENT_PATH")
	}
	if path == "" {
		return Event{}, fmt.Errorf("no event payload path: GITHUB_EVENT_PATH is unset")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Event{}, fmt.Errorf("failed to read event payload: %w", err)
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("failed to parse event payload: %w", err)
	}

	return event, nil
}

// PullNumber returns the pull request number, preferring the top-level
// field some event types carry.
func (e Event) PullNumber() int {
	if e.Number != 0 {
		return e.Number
	}
	return e.PullRequest.Number
}

// ShouldReview reports whether the event action warrants a review run.
// Anything other than a newly opened or updated pull request is skipped.
func (e Event) ShouldReview() bool {
	switch e.Action {
	case "opened", "synchronize":
		return true
	default:
		return false
	}
}
