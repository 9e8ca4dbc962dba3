// Package logging provides the stderr logger used across rbw-lookup,
// with redaction support so secret values never reach log output.
package logging

import (
	"fmt"
	"os"
	"strings"
)

// Logger writes leveled messages to stderr. Secret values must be wrapped
// in Secret before being passed as format arguments.
type Logger struct {
	debug   bool
	noColor bool
}

// New creates a new logger instance.
func New(debug, noColor bool) *Logger {
	return &Logger{debug: debug, noColor: noColor}
}

type level struct {
	mark  string
	color string
}

var (
	levelInfo  = level{mark: "✓", color: "\033[32m"}
	levelWarn  = level{mark: "⚠", color: "\033[33m"}
	levelError = level{mark: "✗", color: "\033[31m"}
	levelDebug = level{mark: "[DEBUG]", color: "\033[36m"}
)

func (l *Logger) logf(lv level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.noColor {
		fmt.Fprintf(os.Stderr, "%s %s\n", lv.mark, msg)
		return
	}
	fmt.Fprintf(os.Stderr, "%s%s\033[0m %s\n", lv.color, lv.mark, msg)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(levelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(levelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(levelError, format, args...)
}

// Debug logs a message only when debug mode is enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.logf(levelDebug, format, args...)
}

// Secret represents a value that must be redacted in logs.
type Secret string

// String implements fmt.Stringer, always returning a redacted value.
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer for %#v formatting.
func (s Secret) GoString() string {
	return "[REDACTED]"
}

// Redact replaces every occurrence of the given secret values in s with
// [REDACTED]. Trivially short values are left alone to avoid mangling
// unrelated text.
func Redact(s string, secrets []string) string {
	result := s
	for _, secret := range secrets {
		if len(secret) > 3 {
			result = strings.ReplaceAll(result, secret, "[REDACTED]")
		}
	}
	return result
}
