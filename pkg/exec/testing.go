package exec

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockCommandExecutor provides a configurable CommandExecutor for testing
// code that shells out to the rbw CLI.
type MockCommandExecutor struct {
	mu sync.Mutex

	// Responses maps command patterns to their mock responses.
	// Key format: "command arg1 arg2" (space-separated command and args).
	// Patterns match as prefixes, so "rbw get" covers any get invocation.
	Responses map[string]MockResponse

	// RecordedCalls stores all calls made to Execute for verification.
	RecordedCalls []RecordedCall

	// StrictMode causes Execute to fail if no matching response is found.
	// Without it, unknown commands return empty success.
	StrictMode bool
}

// MockResponse defines the output of a mocked command.
type MockResponse struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// RecordedCall stores one Execute invocation.
type RecordedCall struct {
	Command string
	Args    []string
}

// NewMockCommandExecutor creates a mock executor with no configured responses.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{
		Responses: make(map[string]MockResponse),
	}
}

// Execute returns the mocked response for the given command.
func (m *MockCommandExecutor) Execute(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RecordedCalls = append(m.RecordedCalls, RecordedCall{Command: name, Args: args})

	key := name
	if len(args) > 0 {
		key += " " + strings.Join(args, " ")
	}

	if resp, ok := m.Responses[key]; ok {
		return resp.output()
	}
	for pattern, resp := range m.Responses {
		if strings.HasPrefix(key, pattern) {
			return resp.output()
		}
	}

	if m.StrictMode {
		return nil, nil, fmt.Errorf("mock: no response configured for command: %s", key)
	}
	return []byte{}, []byte{}, nil
}

// output returns fresh copies of the buffers. Callers may wipe the
// returned bytes, and the configured response must survive repeated
// invocations.
func (r MockResponse) output() ([]byte, []byte, error) {
	stdout := append([]byte(nil), r.Stdout...)
	stderr := append([]byte(nil), r.Stderr...)
	return stdout, stderr, r.Err
}

// AddResponse registers a mock response for a command pattern.
func (m *MockCommandExecutor) AddResponse(commandPattern string, response MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[commandPattern] = response
}

// AddOutput registers a successful response with the given stdout.
func (m *MockCommandExecutor) AddOutput(commandPattern, stdout string) {
	m.AddResponse(commandPattern, MockResponse{Stdout: []byte(stdout)})
}

// AddErrorResponse registers a failing response with stderr and an exit code.
func (m *MockCommandExecutor) AddErrorResponse(commandPattern, stderr string, exitCode int) {
	m.AddResponse(commandPattern, MockResponse{
		Stderr: []byte(stderr),
		Err:    fmt.Errorf("exit status %d", exitCode),
	})
}

// Calls returns all recorded calls matching the given command name.
func (m *MockCommandExecutor) Calls(commandName string) []RecordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []RecordedCall
	for _, call := range m.RecordedCalls {
		if call.Command == commandName {
			matches = append(matches, call)
		}
	}
	return matches
}

// CallCount returns the number of times Execute was called.
func (m *MockCommandExecutor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.RecordedCalls)
}
