// Package person resolves free-form name queries against the participant
// names that appear in the dataset.
package person

import (
	"slices"
	"strings"
)

// Name is a participant name split into first and last parts. Single-word
// names have only a last part.
type Name struct {
	First string
	Last  string
}

// SplitName splits a participant name on its final word: "Jane Q Doe" has
// first "Jane Q" and last "Doe".
func SplitName(full string) Name {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return Name{}
	case 1:
		return Name{Last: parts[0]}
	default:
		return Name{
			First: strings.Join(parts[:len(parts)-1], " "),
			Last:  parts[len(parts)-1],
		}
	}
}

// Query represents a parsed person search query.
type Query struct {
	First string // First name (may be empty for single-word queries)
	Last  string
}

// ParseQuery parses a person search string into a structured Query.
//
// Supported formats:
//   - "Sandy"        → last="Sandy"
//   - "Jane Doe"     → first="Jane", last="Doe"
//   - "Doe, Jane"    → first="Jane", last="Doe"
//
// Names are trimmed but case is preserved (matching is case-insensitive).
func ParseQuery(input string) Query {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}
	}

	if idx := strings.Index(input, ","); idx > 0 {
		last := strings.TrimSpace(input[:idx])
		first := strings.TrimSpace(input[idx+1:])
		return Query{First: first, Last: last}
	}

	n := SplitName(input)
	return Query{First: n.First, Last: n.Last}
}

// IsEmpty reports whether the query has nothing to match on.
func (q Query) IsEmpty() bool {
	return q.Last == "" && q.First == ""
}

// Matches checks if the query matches a participant name.
//
// Matching rules:
//   - Last name: case-insensitive exact match (required)
//   - First name: case-insensitive prefix match (if query has first name)
//
// A single-word query also matches a single-word name, so "sandy" finds
// "Sandy", while "Do" does not match "Jane Doe".
func (q Query) Matches(full string) bool {
	if q.IsEmpty() {
		return false
	}
	n := SplitName(full)

	if !strings.EqualFold(q.Last, n.Last) {
		return false
	}
	if q.First == "" {
		return true
	}
	return strings.HasPrefix(
		strings.ToLower(n.First),
		strings.ToLower(q.First),
	)
}

// Resolve returns the distinct names matched by the query, sorted. Names
// equal to the whole query short-circuit the prefix rules. Both checks ignore
// case, so "sandy" and "Sandy" resolve alike.
func Resolve(q Query, names []string) []string {
	if q.IsEmpty() {
		return nil
	}
	full := strings.TrimSpace(q.First + " " + q.Last)
	if exact := collect(names, func(name string) bool {
		return strings.EqualFold(name, full)
	}); len(exact) > 0 {
		return exact
	}
	return collect(names, q.Matches)
}

func collect(names []string, keep func(string) bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range names {
		if !seen[name] && keep(name) {
			seen[name] = true
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}
