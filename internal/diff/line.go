package diff

// LineKind classifies a single line within a hunk.
type LineKind int

const (
	// LineContext is an unchanged line (starts with ' ' in the diff).
	LineContext LineKind = iota
	// LineAdded is an added line (starts with '+').
	LineAdded
	// LineRemoved is a removed line (starts with '-').
	LineRemoved
)

// String returns the diff prefix character for the kind.
func (k LineKind) String() string {
	switch k {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a hunk. Lines are constructed via AddedLine,
// RemovedLine, and ContextLine so that only the line numbers valid for the
// kind are ever populated: added lines carry a new-side number, removed lines
// an old-side number, context lines both.
type Line struct {
	kind    LineKind
	content string
	oldLine int
	newLine int
}

// AddedLine constructs an added line at the given new-side line number.
func AddedLine(newLine int, content string) Line {
	return Line{kind: LineAdded, content: content, newLine: newLine}
}

// RemovedLine constructs a removed line at the given old-side line number.
func RemovedLine(oldLine int, content string) Line {
	return Line{kind: LineRemoved, content: content, oldLine: oldLine}
}

// ContextLine constructs an unchanged line present on both sides.
func ContextLine(oldLine, newLine int, content string) Line {
	return Line{kind: LineContext, content: content, oldLine: oldLine, newLine: newLine}
}

// Kind returns the line's classification.
func (l Line) Kind() LineKind { return l.kind }

// Content returns the line text without its diff prefix character.
func (l Line) Content() string { return l.content }

// NewLine returns the new-side line number. ok is false for removed lines,
// which do not exist in the new file.
func (l Line) NewLine() (n int, ok bool) {
	if l.kind == LineRemoved {
		return 0, false
	}
	return l.newLine, true
}

// OldLine returns the old-side line number. ok is false for added lines,
// which do not exist in the old file.
func (l Line) OldLine() (n int, ok bool) {
	if l.kind == LineAdded {
		return 0, false
	}
	return l.oldLine, true
}
