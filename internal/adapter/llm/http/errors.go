// Package http holds the HTTP plumbing shared by every outbound API client:
// typed errors with retryability, exponential-backoff retries, and structured
// request/response logging with credential redaction.
package http

import "fmt"

// ErrorType categorizes an API failure.
type ErrorType int

const (
	ErrTypeAuthentication ErrorType = iota
	ErrTypeRateLimit
	ErrTypeServiceUnavailable
	ErrTypeInvalidRequest
	ErrTypeTimeout
	ErrTypeNotFound
	ErrTypeUnknown
)

// String returns a human-readable description of the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeAuthentication:
		return "authentication error"
	case ErrTypeRateLimit:
		return "rate limit exceeded"
	case ErrTypeServiceUnavailable:
		return "service unavailable"
	case ErrTypeInvalidRequest:
		return "invalid request"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeNotFound:
		return "not found"
	default:
		return "unknown error"
	}
}

// Error is an API client error carrying the failing provider, the HTTP
// status, and whether a retry is worthwhile.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Retryable  bool
	Provider   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s (status: %d)", e.Provider, e.Type, e.Message, e.StatusCode)
}

// Is matches errors of the same Type, enabling errors.Is checks against
// template errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// IsRetryable reports whether the operation may succeed on retry.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}
