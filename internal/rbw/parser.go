package rbw

import (
	"fmt"
	"strings"

	"github.com/lalmeras/rbw-lookup/pkg/lookup"
)

// Listing format produced by 'rbw list --fields name,folder,id':
// one entry per line, fields separated by a single tab.
const (
	listingDelimiter  = "\t"
	listingFieldCount = 3
)

// ParseListing converts raw 'rbw list' output into Entry records.
//
// Parsing is strict: a non-blank line with the wrong field count aborts
// the whole parse with lookup.ParseError. Silently skipping a malformed
// line could hide a credential and turn an ambiguous name into a false
// unique match, so abort-on-malformed is the safer total behavior.
func ParseListing(raw []byte) ([]lookup.Entry, error) {
	var entries []lookup.Entry

	for i, line := range strings.Split(string(raw), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, listingDelimiter)
		if len(fields) != listingFieldCount {
			return nil, lookup.ParseError{
				Reason: fmt.Sprintf("expected %d tab-separated fields, got %d", listingFieldCount, len(fields)),
				Line:   i + 1,
			}
		}
		if fields[2] == "" {
			return nil, lookup.ParseError{Reason: "entry has an empty id", Line: i + 1}
		}
		entries = append(entries, lookup.Entry{
			Name:   fields[0],
			Folder: fields[1],
			ID:     fields[2],
		})
	}

	return entries, nil
}

// ParseSecret converts a raw 'rbw get' payload into the secret value.
//
// Exactly one trailing newline (or CRLF pair) is stripped; internal
// whitespace is preserved byte-for-byte since passwords may be
// whitespace-sensitive. An empty payload fails with lookup.ParseError:
// rbw always terminates a revealed value with a newline, so nothing to
// strip means the field had no value.
func ParseSecret(raw []byte) (string, error) {
	value := string(raw)
	if strings.HasSuffix(value, "\r\n") {
		value = value[:len(value)-2]
	} else if strings.HasSuffix(value, "\n") {
		value = value[:len(value)-1]
	}
	if value == "" {
		return "", lookup.ParseError{Reason: "empty secret payload"}
	}
	return value, nil
}
