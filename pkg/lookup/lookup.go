// Package lookup defines the contract between host automation tooling and
// the rbw credential resolver.
//
// Host code constructs a Resolver explicitly (there is no process-global
// registry) and hands it lookup terms. Each term resolves to exactly one
// secret value or fails with a typed error from this package; ambiguity is
// never resolved by picking an arbitrary candidate.
package lookup

import (
	"context"
	"fmt"
	"strings"
)

// Entry is one credential record from the rbw store, as reported by the
// listing subcommand. Entries are immutable snapshots; only ID is
// guaranteed unique across the store.
type Entry struct {
	// Name is the user-facing identifier. Not unique.
	Name string

	// Folder is an optional grouping qualifier. Empty when the entry
	// lives at the top level of the store.
	Folder string

	// ID is the opaque unique identifier assigned by rbw.
	ID string
}

// Query is one lookup request. A Query is constructed once and never
// mutated.
type Query struct {
	// Name of the entry to resolve. Required.
	Name string

	// Folder restricts the match to entries in this folder. Optional.
	Folder string

	// Field selects which credential field to reveal. Empty means the
	// primary password field.
	Field string
}

// String renders the query for error messages. The secret value never
// appears here; a query only carries addressing information.
func (q Query) String() string {
	s := q.Name
	if q.Folder != "" {
		s = q.Folder + "/" + s
	}
	if q.Field != "" {
		s += "#" + q.Field
	}
	return s
}

// Resolver maps lookup queries to secret values.
//
// Implementations must be safe for concurrent use and must not retain
// secret values or entry listings across calls.
type Resolver interface {
	// Resolve returns the secret value for the unique entry matching the
	// query, or a typed error: NotFoundError, AmbiguousMatchError,
	// StoreLockedError, ToolNotFoundError, ToolExecutionError, ParseError.
	Resolve(ctx context.Context, query Query) (string, error)

	// List returns the normalized entry listing. No secret values.
	List(ctx context.Context) ([]Entry, error)
}

// Options carries the caller-supplied qualifiers for a batch of lookups.
// It replaces the loosely typed option maps of template engines with
// named, typed fields validated at the boundary.
type Options struct {
	// Folder restricts matches to this folder for every term.
	Folder string

	// Field selects the credential field to return. Empty means password.
	Field string
}

// Validate rejects option values that cannot form a well-formed query.
func (o Options) Validate() error {
	if strings.ContainsRune(o.Folder, '\t') {
		return fmt.Errorf("invalid folder %q: must not contain tab characters", o.Folder)
	}
	if strings.ContainsRune(o.Field, '\t') || strings.ContainsRune(o.Field, '\n') {
		return fmt.Errorf("invalid field %q: must not contain control characters", o.Field)
	}
	return nil
}

// ResolveAll resolves each term to one secret value, preserving input
// order. The first failure aborts the whole batch (fail-fast, no partial
// results), so a locked store or an ambiguous name is never masked by
// later successes.
func ResolveAll(ctx context.Context, r Resolver, terms []string, opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	values := make([]string, 0, len(terms))
	for _, term := range terms {
		if term == "" {
			return nil, fmt.Errorf("empty lookup term at position %d", len(values))
		}
		value, err := r.Resolve(ctx, Query{
			Name:   term,
			Folder: opts.Folder,
			Field:  opts.Field,
		})
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}
