// Package filter applies glob-style exclusion patterns to changed-file paths
// so that generated or vendored files never reach the review pipeline.
package filter

import (
	"path"
	"strings"
)

// Excluder matches file paths against a fixed set of exclusion patterns.
// Patterns use path.Match syntax with two common extensions: a leading "**/"
// matches any directory depth, and a trailing "/**" matches everything under
// a directory. A pattern without a slash is matched against the path's base
// name (so "*.lock" excludes lock files at any depth).
type Excluder struct {
	patterns []string
}

// New constructs an Excluder. Empty and whitespace-only patterns are ignored.
func New(patterns []string) *Excluder {
	cleaned := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return &Excluder{patterns: cleaned}
}

// Excluded reports whether the path matches any exclusion pattern.
func (e *Excluder) Excluded(filePath string) bool {
	for _, pattern := range e.patterns {
		if matches(pattern, filePath) {
			return true
		}
	}
	return false
}

// Apply returns the subset of paths that are not excluded, preserving order.
func (e *Excluder) Apply(paths []string) []string {
	if len(e.patterns) == 0 {
		return paths
	}
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if !e.Excluded(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

func matches(pattern, filePath string) bool {
	if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
		return filePath == dir || strings.HasPrefix(filePath, dir+"/")
	}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		if ok, _ := path.Match(rest, path.Base(filePath)); ok {
			return true
		}
		// Also let the remainder match a trailing multi-segment suffix,
		// e.g. "**/testdata/*.json".
		segments := strings.Split(filePath, "/")
		for i := range segments {
			if ok, _ := path.Match(rest, strings.Join(segments[i:], "/")); ok {
				return true
			}
		}
		return false
	}
	if !strings.Contains(pattern, "/") {
		if ok, _ := path.Match(pattern, path.Base(filePath)); ok {
			return true
		}
	}
	ok, _ := path.Match(pattern, filePath)
	return ok
}
