package skip_test

import (
	"testing"

	"github.com/prreview/prreview/internal/usecase/skip"
)

func TestContainsSkipTrigger(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "bracket format with space",
			text:     "[skip review]",
			expected: true,
		},
		{
			name:     "trigger inside a title",
			text:     "fix: update README [skip review]",
			expected: true,
		},
		{
			name:     "bracket format with hyphen",
			text:     "[skip-review]",
			expected: true,
		},
		{
			name:     "uppercase",
			text:     "[SKIP REVIEW]",
			expected: true,
		},
		{
			name:     "mixed case hyphen format",
			text:     "[Skip-Review]",
			expected: true,
		},
		{
			name:     "multiline description with trigger in middle",
			text:     "## Description\n\nThis is a WIP PR.\n\n[skip review]\n\n## Changes",
			expected: true,
		},
		{
			name:     "no trigger",
			text:     "fix: update tests",
			expected: false,
		},
		{
			name:     "empty string",
			text:     "",
			expected: false,
		},
		{
			name:     "missing brackets",
			text:     "skip review",
			expected: false,
		},
		{
			name:     "unrelated bracket tag",
			text:     "[skip ci]",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := skip.ContainsSkipTrigger(tt.text); got != tt.expected {
				t.Errorf("ContainsSkipTrigger(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		req        skip.CheckRequest
		shouldSkip bool
		reason     string
	}{
		{
			name:       "trigger in title",
			req:        skip.CheckRequest{PRTitle: "WIP [skip review]"},
			shouldSkip: true,
			reason:     "PR title",
		},
		{
			name:       "trigger in description",
			req:        skip.CheckRequest{PRTitle: "Add feature", PRDescription: "Draft.\n\n[skip-review]"},
			shouldSkip: true,
			reason:     "PR description",
		},
		{
			name:       "title wins over description",
			req:        skip.CheckRequest{PRTitle: "[skip review]", PRDescription: "[skip review]"},
			shouldSkip: true,
			reason:     "PR title",
		},
		{
			name: "no trigger",
			req:  skip.CheckRequest{PRTitle: "Add feature", PRDescription: "Adds the feature."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := skip.Check(tt.req)
			if result.ShouldSkip != tt.shouldSkip {
				t.Errorf("ShouldSkip = %v, want %v", result.ShouldSkip, tt.shouldSkip)
			}
			if result.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.reason)
			}
		})
	}
}
