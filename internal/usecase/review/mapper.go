package review

import (
	"strconv"
	"strings"

	"github.com/prreview/prreview/internal/diff"
	"github.com/prreview/prreview/internal/domain"
)

// MapComments converts interpreted raw comments into submission-ready
// review comments anchored to file.Path.
//
// A deleted file yields nothing, since there is no destination file to
// anchor a comment to. Entries whose line number is non-numeric or not
// positive are dropped, never coerced to zero. When validateLines is
// set, entries whose line number does not land on a line the hunk
// touches on the new side are dropped as well; by default the
// model-declared number is trusted as-is.
func MapComments(file diff.FileDiff, hunk diff.Hunk, raw []RawComment, validateLines bool) []domain.ReviewComment {
	if file.IsDeleted() {
		return nil
	}

	var comments []domain.ReviewComment
	for _, rc := range raw {
		line, err := strconv.Atoi(strings.TrimSpace(rc.LineNumber))
		if err != nil || line <= 0 {
			continue
		}
		if validateLines && !hunk.HasNewLine(line) {
			continue
		}
		comments = append(comments, domain.ReviewComment{
			Path: file.Path,
			Line: line,
			Body: rc.ReviewComment,
		})
	}
	return comments
}
