package fetch

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/edamontology/edammap/pkg/edammap/internalerr"
)

// Cache is a read-through SQLite cache in front of another Fetcher.
// Failed fetches are cached as empty entries so a dead link is not
// retried on every run.
type Cache struct {
	db    *sql.DB
	inner Fetcher
}

// OpenCache opens (or creates) the cache database at path, with WAL mode
// enabled, wrapping the given Fetcher.
func OpenCache(ctx context.Context, path string, inner Fetcher) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open fetch cache %s: %v", internalerr.ErrFetchUnavailable, path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: fetch cache pragma: %v", internalerr.ErrFetchUnavailable, err)
	}

	schema := `CREATE TABLE IF NOT EXISTS fetched (
		ref        TEXT PRIMARY KEY,
		text       TEXT NOT NULL,
		ok         INTEGER NOT NULL,
		fetched_at INTEGER NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: fetch cache schema: %v", internalerr.ErrFetchUnavailable, err)
	}

	return &Cache{db: db, inner: inner}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Fetch returns the cached text for ref, fetching and storing it on a miss.
// A storage error degrades to an uncached fetch rather than failing.
func (c *Cache) Fetch(ctx context.Context, ref string) (string, bool) {
	var text string
	var ok int
	err := c.db.QueryRowContext(ctx,
		"SELECT text, ok FROM fetched WHERE ref = ?", ref).Scan(&text, &ok)
	if err == nil {
		return text, ok == 1
	}

	text, found := c.inner.Fetch(ctx, ref)

	// A miss under a cancelled or expired context says nothing about the
	// URL itself; only genuine failures are recorded.
	if !found && ctx.Err() != nil {
		return "", false
	}

	okVal := 0
	if found {
		okVal = 1
	}
	_, _ = c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO fetched (ref, text, ok, fetched_at) VALUES (?, ?, ?, ?)",
		ref, text, okVal, time.Now().Unix())

	return text, found
}
