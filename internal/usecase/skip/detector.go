// Package skip provides skip trigger detection for reviews. It lets
// authors bypass the reviewer by including a marker in the pull request
// title or description.
package skip

import (
	"regexp"
	"strings"
)

// skipTriggerPattern matches [skip review] or [skip-review] (case-insensitive).
var skipTriggerPattern = regexp.MustCompile(`(?i)\[skip[ -]review\]`)

// ContainsSkipTrigger checks if text contains a skip trigger pattern.
// Supported patterns:
//   - [skip review]
//   - [skip-review]
//
// Matching is case-insensitive.
func ContainsSkipTrigger(text string) bool {
	return skipTriggerPattern.MatchString(text)
}

// CheckRequest contains the inputs to check for skip triggers.
type CheckRequest struct {
	PRTitle       string
	PRDescription string
}

// CheckResult contains the result of checking for skip triggers.
type CheckResult struct {
	ShouldSkip bool
	Reason     string // "PR title" or "PR description"
}

// Check examines the pull request metadata for skip triggers.
// The title is checked before the description.
func Check(req CheckRequest) CheckResult {
	if ContainsSkipTrigger(strings.TrimSpace(req.PRTitle)) {
		return CheckResult{ShouldSkip: true, Reason: "PR title"}
	}
	if ContainsSkipTrigger(req.PRDescription) {
		return CheckResult{ShouldSkip: true, Reason: "PR description"}
	}
	return CheckResult{}
}
