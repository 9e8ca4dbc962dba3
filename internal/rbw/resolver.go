package rbw

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/awnumar/memguard"

	"github.com/lalmeras/rbw-lookup/internal/logging"
	"github.com/lalmeras/rbw-lookup/internal/metrics"
	"github.com/lalmeras/rbw-lookup/pkg/lookup"
)

// Resolver implements lookup.Resolver on top of the rbw CLI with a
// two-phase list-then-fetch design: the metadata listing disambiguates
// the query, then a second invocation reveals the single selected field.
// This mirrors rbw's own separation between enumerating metadata and
// revealing secrets, and keeps the secret in memory no longer than one
// resolution.
//
// The resolver holds no mutable state across calls and is safe for
// concurrent use.
type Resolver struct {
	client *Client
	logger *logging.Logger
}

// NewResolver creates a resolver backed by the given client.
func NewResolver(client *Client, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.New(false, false)
	}
	return &Resolver{client: client, logger: logger}
}

// List returns the normalized entry listing.
func (r *Resolver) List(ctx context.Context) ([]lookup.Entry, error) {
	return r.client.List(ctx)
}

// Resolve maps a query to the secret value of the unique matching entry.
func (r *Resolver) Resolve(ctx context.Context, query lookup.Query) (string, error) {
	start := time.Now()
	value, err := r.resolve(ctx, query)
	metrics.RecordResolution(outcomeLabel(err), time.Since(start))
	return value, err
}

func (r *Resolver) resolve(ctx context.Context, query lookup.Query) (string, error) {
	if query.Name == "" {
		return "", fmt.Errorf("lookup query has no name")
	}

	entries, err := r.client.List(ctx)
	if err != nil {
		return "", err
	}

	match, err := selectEntry(entries, query)
	if err != nil {
		return "", err
	}

	r.logger.Debug("query %s matched entry id %s", query, match.ID)

	raw, err := r.client.FetchField(ctx, match.ID, query.Field)
	if err != nil {
		return "", err
	}
	// The raw subprocess buffer holds the secret with its trailing
	// newline; wipe it once the value has been extracted.
	defer memguard.WipeBytes(raw)

	return ParseSecret(raw)
}

// selectEntry filters entries down to the unique match for the query.
// Ambiguity is always an error carrying the sorted candidate ids; the
// selector never silently picks a first match.
func selectEntry(entries []lookup.Entry, query lookup.Query) (lookup.Entry, error) {
	var candidates []lookup.Entry
	for _, entry := range entries {
		if entry.Name != query.Name {
			continue
		}
		if query.Folder != "" && entry.Folder != query.Folder {
			continue
		}
		candidates = append(candidates, entry)
	}

	switch len(candidates) {
	case 0:
		return lookup.Entry{}, lookup.NotFoundError{Name: query.Name, Folder: query.Folder}
	case 1:
		return candidates[0], nil
	default:
		ids := make([]string, len(candidates))
		for i, entry := range candidates {
			ids[i] = entry.ID
		}
		sort.Strings(ids)
		return lookup.Entry{}, lookup.AmbiguousMatchError{
			Name:         query.Name,
			Folder:       query.Folder,
			CandidateIDs: ids,
		}
	}
}

// outcomeLabel classifies a resolution error for metrics.
func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var (
		notFound  lookup.NotFoundError
		ambiguous lookup.AmbiguousMatchError
		locked    lookup.StoreLockedError
		noTool    lookup.ToolNotFoundError
		parseErr  lookup.ParseError
	)
	switch {
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &ambiguous):
		return "ambiguous"
	case errors.As(err, &locked):
		return "locked"
	case errors.As(err, &noTool):
		return "tool_not_found"
	case errors.As(err, &parseErr):
		return "parse_error"
	default:
		return "exec_error"
	}
}
