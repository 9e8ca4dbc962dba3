// Package errors provides user-facing error envelopes with actionable
// suggestions, in the shape the CLI prints them.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lalmeras/rbw-lookup/pkg/lookup"
)

// UserError represents an error that should be shown to the user with
// helpful context.
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context.
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// LookupError wraps a resolution failure with a suggestion matching its
// kind. The underlying typed error stays reachable through Unwrap so
// callers can still branch on it.
func LookupError(err error) error {
	return UserError{
		Message:    "Failed to resolve credential",
		Details:    err.Error(),
		Suggestion: suggestionFor(err),
		Err:        err,
	}
}

// suggestionFor maps the lookup error taxonomy to an actionable next step.
// Nothing here retries or falls back: a locked store must never be
// presented as a missing credential.
func suggestionFor(err error) string {
	var (
		notFound  lookup.NotFoundError
		ambiguous lookup.AmbiguousMatchError
		locked    lookup.StoreLockedError
		noTool    lookup.ToolNotFoundError
		execErr   lookup.ToolExecutionError
		parseErr  lookup.ParseError
	)

	switch {
	case errors.As(err, &noTool):
		return "Install rbw: https://github.com/doy/rbw (brew install rbw, or your distribution's package)"
	case errors.As(err, &locked):
		return "Run 'rbw unlock' to unlock the store, then retry"
	case errors.As(err, &notFound):
		return "Check the entry name with 'rbw list'"
	case errors.As(err, &ambiguous):
		return "Several entries share this name. Re-run with --folder to pick one"
	case errors.As(err, &parseErr):
		return "The rbw output format was not recognized. Check that the installed rbw version is compatible"
	case errors.As(err, &execErr):
		return "Run 'rbw sync' and check that rbw is configured ('rbw config show')"
	}
	return ""
}
