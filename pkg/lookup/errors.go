package lookup

import (
	"fmt"
	"strings"
)

// ToolNotFoundError indicates the rbw executable is missing from PATH.
// This is fatal for the whole batch and never retried.
type ToolNotFoundError struct {
	// Tool is the executable name that could not be found.
	Tool string
	Err  error
}

func (e ToolNotFoundError) Error() string {
	return fmt.Sprintf("credential tool '%s' not found in PATH", e.Tool)
}

func (e ToolNotFoundError) Unwrap() error {
	return e.Err
}

// StoreLockedError indicates the credential store requires an interactive
// unlock. Unlocking is out of this system's control, so the error is
// surfaced with an actionable message and never auto-retried.
type StoreLockedError struct {
	// Stderr is the captured diagnostic output from rbw.
	Stderr string
}

func (e StoreLockedError) Error() string {
	return "credential store is locked: run 'rbw unlock'"
}

// ToolExecutionError indicates an unexpected non-zero exit from rbw that
// carried no recognizable "locked" signal.
type ToolExecutionError struct {
	// Args is the argument vector that was executed, tool name excluded.
	Args []string

	// ExitCode is the child's exit status, -1 if it never ran.
	ExitCode int

	// Stderr is the captured diagnostic output.
	Stderr string
	Err    error
}

func (e ToolExecutionError) Error() string {
	msg := fmt.Sprintf("rbw %s failed (exit code %d)", strings.Join(e.Args, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e ToolExecutionError) Unwrap() error {
	return e.Err
}

// ParseError indicates rbw produced output this adapter cannot interpret,
// usually a version mismatch with the installed tool. Surfaced, not
// retried.
type ParseError struct {
	// Reason describes what was malformed.
	Reason string

	// Line is the 1-based listing line number, 0 when not line-scoped.
	Line int
}

func (e ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cannot parse rbw output at line %d: %s", e.Line, e.Reason)
	}
	return "cannot parse rbw output: " + e.Reason
}

// NotFoundError indicates no entry matched the query.
type NotFoundError struct {
	Name   string
	Folder string
}

func (e NotFoundError) Error() string {
	if e.Folder != "" {
		return fmt.Sprintf("no such credential: '%s' in folder '%s'", e.Name, e.Folder)
	}
	return fmt.Sprintf("no such credential: '%s'", e.Name)
}

// AmbiguousMatchError indicates more than one entry matched the query.
// The candidate ids are included so the caller can refine the query with
// a folder qualifier; a secret is never returned for an ambiguous match.
type AmbiguousMatchError struct {
	Name   string
	Folder string

	// CandidateIDs lists the ids of all matching entries, sorted.
	CandidateIDs []string
}

func (e AmbiguousMatchError) Error() string {
	return fmt.Sprintf("credential '%s' is ambiguous, %d entries match (ids: %s); qualify the lookup with a folder",
		e.Name, len(e.CandidateIDs), strings.Join(e.CandidateIDs, ", "))
}
