// Package fetch resolves the text behind a tool's links: web pages,
// documentation pages and publication identifiers. The mapping engine only
// sees text-or-absent; retry, caching and timeout policy live here.
package fetch

import "context"

// Fetcher resolves a URL or publication identifier to extracted text.
// The second return value is false when no text could be obtained; this is
// a degraded-data condition, never an error.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) (string, bool)
}

// Absent is a Fetcher that resolves nothing, for offline runs and tests.
type Absent struct{}

// Fetch always reports absent text.
func (Absent) Fetch(ctx context.Context, ref string) (string, bool) {
	return "", false
}

// Static is a Fetcher backed by a fixed ref→text map, for tests.
type Static map[string]string

// Fetch looks the ref up in the map.
func (s Static) Fetch(ctx context.Context, ref string) (string, bool) {
	text, ok := s[ref]
	return text, ok && text != ""
}
