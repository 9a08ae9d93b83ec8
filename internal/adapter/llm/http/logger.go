package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

// Logger is the structured logging surface shared by the API clients and the
// review pipeline.
type Logger interface {
	// LogRequest records an outgoing API request (API key redacted).
	LogRequest(ctx context.Context, req RequestLog)

	// LogResponse records an API response with timing and token usage.
	LogResponse(ctx context.Context, resp ResponseLog)

	// LogError records a failed API call.
	LogError(ctx context.Context, entry ErrorLog)

	// LogInfo records a pipeline event with structured fields.
	LogInfo(ctx context.Context, message string, fields map[string]any)

	// LogWarning records a recoverable anomaly with structured fields.
	LogWarning(ctx context.Context, message string, fields map[string]any)
}

// RequestLog describes an outgoing API request.
type RequestLog struct {
	Provider    string
	Model       string
	Timestamp   time.Time
	PromptChars int
	APIKey      string
}

// ResponseLog describes a completed API call.
type ResponseLog struct {
	Provider   string
	Model      string
	Timestamp  time.Time
	Duration   time.Duration
	TokensIn   int
	TokensOut  int
	StatusCode int
}

// ErrorLog describes a failed API call.
type ErrorLog struct {
	Provider   string
	Model      string
	Timestamp  time.Time
	Duration   time.Duration
	Err        error
	StatusCode int
	Retryable  bool
}

// Level is the logging verbosity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

// Format selects the log output encoding.
type Format int

const (
	FormatHuman Format = iota
	FormatJSON
)

// DefaultLogger writes structured logs via the standard log package.
type DefaultLogger struct {
	level      Level
	format     Format
	redactKeys bool
}

// NewDefaultLogger creates a logger with the given verbosity and format.
func NewDefaultLogger(level Level, format Format, redactKeys bool) *DefaultLogger {
	return &DefaultLogger{level: level, format: format, redactKeys: redactKeys}
}

// LogRequest logs an outgoing API request at debug level.
func (l *DefaultLogger) LogRequest(ctx context.Context, req RequestLog) {
	if l.level > LevelDebug {
		return
	}
	key := l.RedactAPIKey(req.APIKey)
	if l.format == FormatJSON {
		l.emitJSON("debug", "request", map[string]any{
			"provider":     req.Provider,
			"model":        req.Model,
			"prompt_chars": req.PromptChars,
			"api_key":      key,
		})
		return
	}
	log.Printf("[DEBUG] %s/%s: request sent (prompt=%d chars, key=%s)",
		req.Provider, req.Model, req.PromptChars, key)
}

// LogResponse logs a completed API call at info level.
func (l *DefaultLogger) LogResponse(ctx context.Context, resp ResponseLog) {
	if l.level > LevelInfo {
		return
	}
	if l.format == FormatJSON {
		l.emitJSON("info", "response", map[string]any{
			"provider":    resp.Provider,
			"model":       resp.Model,
			"duration_ms": resp.Duration.Milliseconds(),
			"tokens_in":   resp.TokensIn,
			"tokens_out":  resp.TokensOut,
			"status_code": resp.StatusCode,
		})
		return
	}
	log.Printf("[INFO] %s/%s: response received (duration=%.1fs, tokens=%d/%d)",
		resp.Provider, resp.Model, resp.Duration.Seconds(), resp.TokensIn, resp.TokensOut)
}

// LogError logs a failed API call.
func (l *DefaultLogger) LogError(ctx context.Context, entry ErrorLog) {
	if l.level > LevelError {
		return
	}
	if l.format == FormatJSON {
		l.emitJSON("error", "error", map[string]any{
			"provider":    entry.Provider,
			"model":       entry.Model,
			"duration_ms": entry.Duration.Milliseconds(),
			"error":       entry.Err.Error(),
			"status_code": entry.StatusCode,
			"retryable":   entry.Retryable,
		})
		return
	}
	retryable := "non-retryable"
	if entry.Retryable {
		retryable = "retryable"
	}
	log.Printf("[ERROR] %s/%s: API call failed (status=%d, %s): %v",
		entry.Provider, entry.Model, entry.StatusCode, retryable, entry.Err)
}

// LogInfo logs a pipeline event at info level.
func (l *DefaultLogger) LogInfo(ctx context.Context, message string, fields map[string]any) {
	if l.level > LevelInfo {
		return
	}
	if l.format == FormatJSON {
		payload := map[string]any{"message": message}
		for k, v := range fields {
			payload[k] = v
		}
		l.emitJSON("info", "event", payload)
		return
	}
	log.Printf("[INFO] %s%s", message, formatFields(fields))
}

// LogWarning logs a recoverable anomaly.
func (l *DefaultLogger) LogWarning(ctx context.Context, message string, fields map[string]any) {
	if l.format == FormatJSON {
		payload := map[string]any{"message": message}
		for k, v := range fields {
			payload[k] = v
		}
		l.emitJSON("warning", "event", payload)
		return
	}
	log.Printf("[WARN] %s%s", message, formatFields(fields))
}

// RedactAPIKey keeps only the last 4 characters of a key.
func (l *DefaultLogger) RedactAPIKey(key string) string {
	if !l.redactKeys {
		return key
	}
	if len(key) <= 4 {
		return "[REDACTED]"
	}
	return fmt.Sprintf("[REDACTED-%s]", key[len(key)-4:])
}

func (l *DefaultLogger) emitJSON(level, kind string, fields map[string]any) {
	payload := map[string]any{"level": level, "type": kind}
	for k, v := range fields {
		payload[k] = v
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[ERROR] failed to encode log entry: %v", err)
		return
	}
	log.Print(string(encoded))
}

// formatFields renders fields as " (k=v, ...)" with stable key order.
func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
