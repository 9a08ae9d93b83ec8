package review

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrUnparseableResponse signals that no reviews object could be
// recovered from a model response. Callers treat it as "zero comments
// for this hunk", never as a run failure.
var ErrUnparseableResponse = errors.New("no reviews object in model response")

// reviewsEnvelope is the only response shape the interpreter accepts.
type reviewsEnvelope struct {
	Reviews []RawComment `json:"reviews"`
}

// Interpret recovers the structured comment list from raw model output.
// It is total over its input: any string yields either a well-formed
// list (possibly empty) or ErrUnparseableResponse, never a panic.
//
// The trimmed text is parsed directly when it already is a JSON
// object; otherwise the span from the first '{' to the last '}' is
// tried, which tolerates prose and markdown fencing around the object.
// A missing reviews field means an empty list. Any shape mismatch is a
// failure, not a best-effort coercion.
func Interpret(text string) ([]RawComment, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrUnparseableResponse
	}

	candidate := trimmed
	if !strings.HasPrefix(candidate, "{") || !json.Valid([]byte(candidate)) {
		start := strings.Index(trimmed, "{")
		end := strings.LastIndex(trimmed, "}")
		if start == -1 || end <= start {
			return nil, ErrUnparseableResponse
		}
		candidate = trimmed[start : end+1]
	}

	var envelope reviewsEnvelope
	if err := json.Unmarshal([]byte(candidate), &envelope); err != nil {
		return nil, ErrUnparseableResponse
	}

	if envelope.Reviews == nil {
		return []RawComment{}, nil
	}
	return envelope.Reviews, nil
}
