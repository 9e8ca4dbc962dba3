package lookup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "tool not found",
			err:      ToolNotFoundError{Tool: "rbw"},
			contains: []string{"rbw", "not found in PATH"},
		},
		{
			name:     "store locked",
			err:      StoreLockedError{Stderr: "agent is locked"},
			contains: []string{"locked", "rbw unlock"},
		},
		{
			name:     "execution failure includes stderr",
			err:      ToolExecutionError{Args: []string{"get", "id001"}, ExitCode: 1, Stderr: "sync required\n"},
			contains: []string{"get id001", "exit code 1", "sync required"},
		},
		{
			name:     "parse error with line",
			err:      ParseError{Reason: "expected 3 tab-separated fields, got 2", Line: 4},
			contains: []string{"line 4", "expected 3"},
		},
		{
			name:     "not found",
			err:      NotFoundError{Name: "GitHub"},
			contains: []string{"no such credential", "GitHub"},
		},
		{
			name:     "not found with folder",
			err:      NotFoundError{Name: "GitHub", Folder: "Work"},
			contains: []string{"GitHub", "Work"},
		},
		{
			name:     "ambiguous lists candidates",
			err:      AmbiguousMatchError{Name: "GitHub", CandidateIDs: []string{"id001", "id002"}},
			contains: []string{"ambiguous", "id001, id002", "folder"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for _, want := range tt.contains {
				assert.Contains(t, tt.err.Error(), want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("exit status 1")

	assert.ErrorIs(t, ToolExecutionError{Err: cause}, cause)
	assert.ErrorIs(t, ToolNotFoundError{Tool: "rbw", Err: cause}, cause)
}
