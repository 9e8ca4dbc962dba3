package rbw_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalmeras/rbw-lookup/internal/rbw"
	pkgexec "github.com/lalmeras/rbw-lookup/pkg/exec"
	"github.com/lalmeras/rbw-lookup/pkg/lookup"
)

func newMockedResolver(mock *pkgexec.MockCommandExecutor) *rbw.Resolver {
	return rbw.NewResolver(rbw.NewClientWithExecutor("rbw", nil, mock), nil)
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("folder qualifier selects the unique match", func(t *testing.T) {
		t.Parallel()

		mock := pkgexec.NewMockCommandExecutor()
		mock.AddOutput("rbw list --fields name,folder,id", listing)
		mock.AddOutput("rbw get id001", "work-secret\n")

		resolver := newMockedResolver(mock)
		value, err := resolver.Resolve(context.Background(), lookup.Query{Name: "GitHub", Folder: "Work"})

		require.NoError(t, err)
		assert.Equal(t, "work-secret", value)

		// list then fetch, nothing else
		calls := mock.Calls("rbw")
		require.Len(t, calls, 2)
		assert.Equal(t, []string{"list", "--fields", "name,folder,id"}, calls[0].Args)
		assert.Equal(t, []string{"get", "id001"}, calls[1].Args)
	})

	t.Run("ambiguous name never yields a secret", func(t *testing.T) {
		t.Parallel()

		mock := pkgexec.NewMockCommandExecutor()
		mock.AddOutput("rbw list --fields name,folder,id", listing)
		mock.AddOutput("rbw get", "must-not-be-fetched\n")

		resolver := newMockedResolver(mock)
		_, err := resolver.Resolve(context.Background(), lookup.Query{Name: "GitHub"})

		var ambiguous lookup.AmbiguousMatchError
		require.True(t, errors.As(err, &ambiguous))
		assert.Equal(t, []string{"id001", "id002"}, ambiguous.CandidateIDs)

		// the fetch phase must never run on ambiguity
		for _, call := range mock.Calls("rbw") {
			assert.NotEqual(t, "get", call.Args[0])
		}
	})

	t.Run("unmatched name fails with NotFoundError", func(t *testing.T) {
		t.Parallel()

		mock := pkgexec.NewMockCommandExecutor()
		mock.AddOutput("rbw list --fields name,folder,id", "")

		resolver := newMockedResolver(mock)
		_, err := resolver.Resolve(context.Background(), lookup.Query{Name: "AnythingElse"})

		var notFound lookup.NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "AnythingElse", notFound.Name)
	})

	t.Run("name match in wrong folder is not found", func(t *testing.T) {
		t.Parallel()

		mock := pkgexec.NewMockCommandExecutor()
		mock.AddOutput("rbw list --fields name,folder,id", listing)

		resolver := newMockedResolver(mock)
		_, err := resolver.Resolve(context.Background(), lookup.Query{Name: "GitHub", Folder: "Nonexistent"})

		var notFound lookup.NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "Nonexistent", notFound.Folder)
	})

	t.Run("locked store during listing", func(t *testing.T) {
		t.Parallel()

		mock := pkgexec.NewMockCommandExecutor()
		mock.AddResponse("rbw list", pkgexec.MockResponse{
			Stderr: []byte("rbw-agent: agent is locked\n"),
			Err:    errors.New("exit status 2"),
		})

		resolver := newMockedResolver(mock)
		_, err := resolver.Resolve(context.Background(), lookup.Query{Name: "GitHub"})

		var locked lookup.StoreLockedError
		require.True(t, errors.As(err, &locked), "locked must not be classified as anything else, got %v", err)
		var notFound lookup.NotFoundError
		assert.False(t, errors.As(err, &notFound))
	})

	t.Run("custom field fetch", func(t *testing.T) {
		t.Parallel()

		mock := pkgexec.NewMockCommandExecutor()
		mock.AddOutput("rbw list --fields name,folder,id", listing)
		mock.AddOutput("rbw get --field username id002", "jdoe\n")

		resolver := newMockedResolver(mock)
		value, err := resolver.Resolve(context.Background(), lookup.Query{
			Name:   "GitHub",
			Folder: "Personal",
			Field:  "username",
		})

		require.NoError(t, err)
		assert.Equal(t, "jdoe", value)
	})

	t.Run("malformed listing aborts before any fetch", func(t *testing.T) {
		t.Parallel()

		mock := pkgexec.NewMockCommandExecutor()
		mock.AddOutput("rbw list --fields name,folder,id", "GitHub\tWork\tid001\ngarbage line\n")
		mock.AddOutput("rbw get", "must-not-be-fetched\n")

		resolver := newMockedResolver(mock)
		_, err := resolver.Resolve(context.Background(), lookup.Query{Name: "GitHub", Folder: "Work"})

		var parseErr lookup.ParseError
		require.True(t, errors.As(err, &parseErr))

		for _, call := range mock.Calls("rbw") {
			assert.NotEqual(t, "get", call.Args[0])
		}
	})

	t.Run("secret value preserved exactly", func(t *testing.T) {
		t.Parallel()

		mock := pkgexec.NewMockCommandExecutor()
		mock.AddOutput("rbw list --fields name,folder,id", "spaced\t\tid009\n")
		mock.AddOutput("rbw get id009", "p@ss with  spaces\t\n")

		resolver := newMockedResolver(mock)
		value, err := resolver.Resolve(context.Background(), lookup.Query{Name: "spaced"})

		require.NoError(t, err)
		assert.Equal(t, "p@ss with  spaces\t", value)
	})

	t.Run("empty query name is rejected", func(t *testing.T) {
		t.Parallel()

		mock := pkgexec.NewMockCommandExecutor()
		resolver := newMockedResolver(mock)

		_, err := resolver.Resolve(context.Background(), lookup.Query{})
		require.Error(t, err)
		assert.Zero(t, mock.CallCount(), "no subprocess runs for an invalid query")
	})
}

// Resolve is deterministic: same entries and query always produce the
// same result or the same error kind, including candidate ordering.
func TestResolver_Deterministic(t *testing.T) {
	t.Parallel()

	for i := 0; i < 5; i++ {
		mock := pkgexec.NewMockCommandExecutor()
		// ids deliberately out of order in the listing
		mock.AddOutput("rbw list --fields name,folder,id", "GitHub\tWork\tid002\nGitHub\tWork\tid001\n")

		resolver := newMockedResolver(mock)
		_, err := resolver.Resolve(context.Background(), lookup.Query{Name: "GitHub", Folder: "Work"})

		var ambiguous lookup.AmbiguousMatchError
		require.True(t, errors.As(err, &ambiguous))
		assert.Equal(t, []string{"id001", "id002"}, ambiguous.CandidateIDs)
	}
}

// The resolver keeps no state between calls, so concurrent resolutions
// against independent executors must not interfere.
func TestResolver_ConcurrentUse(t *testing.T) {
	t.Parallel()

	mock := pkgexec.NewMockCommandExecutor()
	mock.AddOutput("rbw list --fields name,folder,id", listing)
	mock.AddOutput("rbw get id001", "work-secret\n")

	resolver := newMockedResolver(mock)

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			value, err := resolver.Resolve(context.Background(), lookup.Query{Name: "GitHub", Folder: "Work"})
			if err == nil && value != "work-secret" {
				err = errors.New("unexpected value")
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-done)
	}
}
