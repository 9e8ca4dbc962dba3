package lookup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalmeras/rbw-lookup/pkg/lookup"
)

// fakeResolver resolves queries from a fixed map and records the queries
// it receives.
type fakeResolver struct {
	values  map[string]string
	failOn  string
	queries []lookup.Query
}

func (f *fakeResolver) Resolve(_ context.Context, query lookup.Query) (string, error) {
	f.queries = append(f.queries, query)
	if query.Name == f.failOn {
		return "", lookup.NotFoundError{Name: query.Name, Folder: query.Folder}
	}
	return f.values[query.Name], nil
}

func (f *fakeResolver) List(_ context.Context) ([]lookup.Entry, error) {
	return nil, nil
}

func TestResolveAll_OrderPreserved(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{values: map[string]string{
		"alpha": "secret-a",
		"beta":  "secret-b",
		"gamma": "secret-c",
	}}

	values, err := lookup.ResolveAll(context.Background(), resolver, []string{"gamma", "alpha", "beta"}, lookup.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"secret-c", "secret-a", "secret-b"}, values)
}

func TestResolveAll_FailFast(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		values: map[string]string{"alpha": "secret-a", "gamma": "secret-c"},
		failOn: "beta",
	}

	values, err := lookup.ResolveAll(context.Background(), resolver, []string{"alpha", "beta", "gamma"}, lookup.Options{})
	require.Error(t, err)
	assert.Nil(t, values, "no partial results on failure")

	var notFound lookup.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "beta", notFound.Name)

	// gamma must never have been attempted
	require.Len(t, resolver.queries, 2)
	assert.Equal(t, "beta", resolver.queries[1].Name)
}

func TestResolveAll_OptionsPropagate(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{values: map[string]string{"alpha": "x"}}

	_, err := lookup.ResolveAll(context.Background(), resolver, []string{"alpha"}, lookup.Options{
		Folder: "Work",
		Field:  "username",
	})
	require.NoError(t, err)

	require.Len(t, resolver.queries, 1)
	assert.Equal(t, lookup.Query{Name: "alpha", Folder: "Work", Field: "username"}, resolver.queries[0])
}

func TestResolveAll_EmptyTerm(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{}
	_, err := lookup.ResolveAll(context.Background(), resolver, []string{"alpha", ""}, lookup.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty lookup term")
}

func TestResolveAll_InvalidOptions(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{}
	_, err := lookup.ResolveAll(context.Background(), resolver, []string{"alpha"}, lookup.Options{Folder: "bad\tfolder"})
	require.Error(t, err)
	assert.Empty(t, resolver.queries, "validation must happen before any resolution")
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    lookup.Options
		wantErr bool
	}{
		{name: "empty options", opts: lookup.Options{}},
		{name: "folder and field", opts: lookup.Options{Folder: "Work", Field: "username"}},
		{name: "tab in folder", opts: lookup.Options{Folder: "a\tb"}, wantErr: true},
		{name: "tab in field", opts: lookup.Options{Field: "a\tb"}, wantErr: true},
		{name: "newline in field", opts: lookup.Options{Field: "a\nb"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuery_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GitHub", lookup.Query{Name: "GitHub"}.String())
	assert.Equal(t, "Work/GitHub", lookup.Query{Name: "GitHub", Folder: "Work"}.String())
	assert.Equal(t, "Work/GitHub#username", lookup.Query{Name: "GitHub", Folder: "Work", Field: "username"}.String())
}
