// Package exec provides abstractions for child process execution.
// This package enables testable code by allowing CLI commands to be mocked.
package exec

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
)

// CommandExecutor defines an interface for running external commands.
// This abstraction allows rbw CLI behavior to be mocked in tests.
type CommandExecutor interface {
	// Execute runs a command with the given context and arguments.
	// Arguments are passed as an explicit vector, never through a shell.
	// Returns captured stdout, stderr, and any error that occurred.
	Execute(ctx context.Context, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// RealCommandExecutor executes actual commands using os/exec.
// This is the production implementation.
type RealCommandExecutor struct{}

// Execute runs an actual command, blocking until the child exits.
func (r *RealCommandExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// DefaultExecutor returns the standard production executor.
// This is used as the default when no executor is injected.
func DefaultExecutor() CommandExecutor {
	return &RealCommandExecutor{}
}

// ExitCode extracts the child exit code from an execution error.
// Returns 0 for nil, the child's code for *exec.ExitError, and -1 when
// the process never ran (e.g. the executable was not found).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// IsNotFound reports whether the error means the executable was missing,
// as opposed to the command running and failing. Covers both PATH lookup
// failures and configured absolute paths that do not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
