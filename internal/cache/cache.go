package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Cache stores compiled instruction streams keyed by a hash of the
// source text, so running an unchanged source skips recompilation.
// It is the persistence collaborator between the compiler and the VM:
// the two may run at different times, or in different processes
// sharing the cache file.
type Cache struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS artifacts (
	id          TEXT PRIMARY KEY,
	source_hash TEXT NOT NULL UNIQUE,
	source_name TEXT NOT NULL,
	code        TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_artifacts_hash ON artifacts(source_hash);
`

// Open opens (creating if needed) a cache at the given path. Use
// ":memory:" for a throwaway in-process cache.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Key hashes a source text into its cache key.
func Key(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Get looks up the compiled code for a source hash. The second return
// value reports whether the artifact was present.
func (c *Cache) Get(sourceHash string) (string, bool, error) {
	var code string
	err := c.db.QueryRow(
		"SELECT code FROM artifacts WHERE source_hash = ?", sourceHash,
	).Scan(&code)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache lookup failed: %w", err)
	}
	return code, true, nil
}

// Put stores a compiled artifact, replacing any previous artifact for
// the same source hash.
func (c *Cache) Put(sourceHash, sourceName, code string) error {
	_, err := c.db.Exec(
		`INSERT INTO artifacts (id, source_hash, source_name, code, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(source_hash) DO UPDATE SET
		   source_name = excluded.source_name,
		   code = excluded.code,
		   created_at = excluded.created_at`,
		uuid.NewString(), sourceHash, sourceName, code, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache store failed: %w", err)
	}
	return nil
}
