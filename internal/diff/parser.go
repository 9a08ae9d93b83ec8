package diff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// devNull is the destination path git uses for deleted files.
const devNull = "/dev/null"

// FileDiff captures the change for a single file: its old and new paths and
// the ordered hunks touching it.
type FileDiff struct {
	// OldPath is the path on the old side, empty for newly added files.
	OldPath string
	// Path is the path on the new side, empty when the file was deleted.
	Path string
	// Hunks are the file's change regions in diff order.
	Hunks []Hunk
}

// IsDeleted reports whether the file no longer exists in the new tree.
// Deleted files have no destination path and cannot anchor review comments.
func (fd FileDiff) IsDeleted() bool {
	return fd.Path == ""
}

// Hunk is one contiguous change region of a file.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	// Raw is the hunk verbatim, header line included, exactly as it
	// appeared in the diff.
	Raw string
	// Lines is the line-indexed view of the hunk body.
	Lines []Line
}

// HasNewLine reports whether the hunk contains new-side line number n.
func (h Hunk) HasNewLine(n int) bool {
	for _, l := range h.Lines {
		if ln, ok := l.NewLine(); ok && ln == n {
			return true
		}
	}
	return false
}

// hunkHeaderPattern matches "@@ -old[,count] +new[,count] @@ optional context".
var hunkHeaderPattern = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse parses the full unified-diff text of a pull request into an ordered
// sequence of FileDiff records, preserving file and hunk order. A
// structurally invalid diff (malformed hunk header, truncated hunk body,
// diff content outside any file) returns an error and no partial result.
func Parse(text string) ([]FileDiff, error) {
	p := parser{}
	for i, line := range strings.Split(text, "\n") {
		if err := p.feed(line); err != nil {
			return nil, fmt.Errorf("diff line %d: %w", i+1, err)
		}
	}
	return p.finish()
}

// parser holds the incremental state of one Parse call.
type parser struct {
	files []FileDiff
	file  *FileDiff

	hunk         *Hunk
	raw          []string
	remainingOld int
	remainingNew int
	oldLine      int
	newLine      int
}

func (p *parser) feed(line string) error {
	if p.hunk != nil {
		// "\ No newline at end of file" markers belong to the hunk text
		// but carry no line of their own.
		if strings.HasPrefix(line, `\`) {
			p.raw = append(p.raw, line)
			return nil
		}
		if p.remainingOld > 0 || p.remainingNew > 0 {
			return p.feedHunkBody(line)
		}
		// Hunk body complete; close it and treat the line structurally.
		if err := p.closeHunk(); err != nil {
			return err
		}
	}
	return p.feedStructural(line)
}

func (p *parser) feedHunkBody(line string) error {
	var kind LineKind
	var content string
	switch {
	case strings.HasPrefix(line, "+"):
		kind, content = LineAdded, line[1:]
	case strings.HasPrefix(line, "-"):
		kind, content = LineRemoved, line[1:]
	case strings.HasPrefix(line, " "):
		kind, content = LineContext, line[1:]
	case line == "":
		// Some transports strip the trailing space off empty context lines.
		kind, content = LineContext, ""
	default:
		return fmt.Errorf("unexpected line %q inside hunk", line)
	}

	switch kind {
	case LineAdded:
		if p.remainingNew == 0 {
			return fmt.Errorf("added line exceeds hunk new-side range")
		}
		p.hunk.Lines = append(p.hunk.Lines, AddedLine(p.newLine, content))
		p.newLine++
		p.remainingNew--
	case LineRemoved:
		if p.remainingOld == 0 {
			return fmt.Errorf("removed line exceeds hunk old-side range")
		}
		p.hunk.Lines = append(p.hunk.Lines, RemovedLine(p.oldLine, content))
		p.oldLine++
		p.remainingOld--
	default:
		if p.remainingOld == 0 || p.remainingNew == 0 {
			return fmt.Errorf("context line exceeds hunk range")
		}
		p.hunk.Lines = append(p.hunk.Lines, ContextLine(p.oldLine, p.newLine, content))
		p.oldLine++
		p.newLine++
		p.remainingOld--
		p.remainingNew--
	}

	p.raw = append(p.raw, line)
	return nil
}

func (p *parser) feedStructural(line string) error {
	switch {
	case strings.HasPrefix(line, "diff --git "):
		p.closeFile()
		p.file = &FileDiff{}
		// The header paths are a fallback for files without ---/+++ lines
		// (binary changes, pure renames, mode changes).
		if i := strings.LastIndex(line, " b/"); i >= 0 {
			p.file.Path = line[i+3:]
		}
		return nil
	case p.file == nil:
		if line == "" {
			return nil
		}
		return fmt.Errorf("content %q outside of any file header", line)
	case strings.HasPrefix(line, "--- "):
		p.file.OldPath = parsePathToken(line[4:], "a/")
		return nil
	case strings.HasPrefix(line, "+++ "):
		p.file.Path = parsePathToken(line[4:], "b/")
		return nil
	case strings.HasPrefix(line, "@@"):
		return p.openHunk(line)
	case line == "",
		strings.HasPrefix(line, "index "),
		strings.HasPrefix(line, "new file mode"),
		strings.HasPrefix(line, "deleted file mode"),
		strings.HasPrefix(line, "old mode"),
		strings.HasPrefix(line, "new mode"),
		strings.HasPrefix(line, "similarity index"),
		strings.HasPrefix(line, "dissimilarity index"),
		strings.HasPrefix(line, "rename "),
		strings.HasPrefix(line, "copy "),
		strings.HasPrefix(line, "Binary files"),
		strings.HasPrefix(line, "GIT binary patch"):
		return nil
	default:
		return fmt.Errorf("unrecognized line %q", line)
	}
}

func (p *parser) openHunk(line string) error {
	m := hunkHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("malformed hunk header %q", line)
	}
	oldStart, _ := strconv.Atoi(m[1])
	oldCount := rangeCount(m[2])
	newStart, _ := strconv.Atoi(m[3])
	newCount := rangeCount(m[4])

	p.hunk = &Hunk{
		OldStart: oldStart,
		OldCount: oldCount,
		NewStart: newStart,
		NewCount: newCount,
	}
	p.raw = []string{line}
	p.remainingOld = oldCount
	p.remainingNew = newCount
	p.oldLine = oldStart
	p.newLine = newStart
	return nil
}

func (p *parser) closeHunk() error {
	if p.hunk == nil {
		return nil
	}
	if p.remainingOld > 0 || p.remainingNew > 0 {
		return fmt.Errorf("truncated hunk: %d old and %d new lines missing",
			p.remainingOld, p.remainingNew)
	}
	p.hunk.Raw = strings.Join(p.raw, "\n")
	p.file.Hunks = append(p.file.Hunks, *p.hunk)
	p.hunk = nil
	p.raw = nil
	return nil
}

func (p *parser) closeFile() {
	if p.file != nil {
		p.files = append(p.files, *p.file)
		p.file = nil
	}
}

func (p *parser) finish() ([]FileDiff, error) {
	if err := p.closeHunk(); err != nil {
		return nil, err
	}
	p.closeFile()
	return p.files, nil
}

// rangeCount parses the optional count of a hunk range; git omits it for
// single-line ranges.
func rangeCount(s string) int {
	if s == "" {
		return 1
	}
	n, _ := strconv.Atoi(s)
	return n
}

// parsePathToken extracts a file path from a ---/+++ header value, stripping
// the a// b/ prefix, any trailing tab metadata, and surrounding quotes.
// Returns "" for the /dev/null sentinel.
func parsePathToken(token, prefix string) string {
	if i := strings.IndexByte(token, '\t'); i >= 0 {
		token = token[:i]
	}
	token = strings.TrimSpace(token)
	token = strings.Trim(token, `"`)
	if token == devNull {
		return ""
	}
	return strings.TrimPrefix(token, prefix)
}
