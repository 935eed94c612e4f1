// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores search results on disk with a TTL so repeated
// queries skip the upstream feed entirely.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-scout/pkg/types"
)

const dbFile = "results.db"

// Cache is a disk-backed result cache keyed by query and year window.
// A disabled cache is inert: Get always misses and Put is a no-op.
type Cache struct {
	db      *sql.DB
	path    string
	ttl     time.Duration
	enabled bool

	now func() time.Time
}

// Entry is one cached search result set with its storage metadata.
type Entry struct {
	Query     string
	YearsBack int
	Papers    []types.Paper
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Stats describes the cache's current state.
type Stats struct {
	Enabled    bool
	Entries    int
	TotalBytes int64
	TTL        time.Duration
	Path       string
}

// Open opens or creates the cache database under cfg.Dir. A corrupt
// database file is removed and recreated rather than failing the run.
func Open(cfg types.CacheConfig) (*Cache, error) {
	if !cfg.Enabled {
		return &Cache{enabled: false, now: time.Now}, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	path := filepath.Join(cfg.Dir, dbFile)
	db, err := open(path)
	if err != nil {
		// The file may be corrupt from a crashed run. The cache is
		// disposable, so start over instead of refusing to run.
		os.Remove(path)
		db, err = open(path)
		if err != nil {
			return nil, fmt.Errorf("opening cache database: %w", err)
		}
	}

	return &Cache{
		db:      db,
		path:    path,
		ttl:     time.Duration(cfg.TTLHours) * time.Hour,
		enabled: true,
		now:     time.Now,
	}, nil
}

func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS results (
		key TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		years_back INTEGER NOT NULL,
		papers TEXT NOT NULL,
		created_at TEXT NOT NULL,
		expires_at TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Key derives the cache key for a query and year window. Queries that
// differ only in case or surrounding whitespace share an entry.
func Key(query string, yearsBack int) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	sum := sha256.Sum256(fmt.Appendf(nil, "%s\x00%d", normalized, yearsBack))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached entry for a query and year window, or false
// on a miss. Expired, empty, and unreadable entries are deleted and
// reported as misses; Get never fails a search. An empty stored result
// set counts as a miss so a transient upstream hiccup does not pin
// "no results" for the whole TTL.
func (c *Cache) Get(query string, yearsBack int) (*Entry, bool) {
	if !c.enabled {
		return nil, false
	}

	key := Key(query, yearsBack)
	var blob, createdAt, expiresAt string
	var storedQuery string
	var storedYears int
	err := c.db.QueryRow(
		`SELECT query, years_back, papers, created_at, expires_at FROM results WHERE key = ?`, key,
	).Scan(&storedQuery, &storedYears, &blob, &createdAt, &expiresAt)
	if err != nil {
		return nil, false
	}

	expires, err := time.Parse(time.RFC3339Nano, expiresAt)
	if err != nil || !c.now().Before(expires) {
		c.delete(key)
		return nil, false
	}

	var papers []types.Paper
	if err := json.Unmarshal([]byte(blob), &papers); err != nil || len(papers) == 0 {
		c.delete(key)
		return nil, false
	}

	created, _ := time.Parse(time.RFC3339Nano, createdAt)
	return &Entry{
		Query:     storedQuery,
		YearsBack: storedYears,
		Papers:    papers,
		CreatedAt: created,
		ExpiresAt: expires,
	}, true
}

// Put stores papers for a query and year window with the configured
// TTL, replacing any existing entry. It reports whether the entry was
// written.
func (c *Cache) Put(query string, yearsBack int, papers []types.Paper) bool {
	if !c.enabled {
		return false
	}

	blob, err := json.Marshal(papers)
	if err != nil {
		return false
	}

	key := Key(query, yearsBack)
	now := c.now().UTC()
	_, err = c.db.Exec(
		`INSERT INTO results (key, query, years_back, papers, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			query=excluded.query, years_back=excluded.years_back,
			papers=excluded.papers, created_at=excluded.created_at,
			expires_at=excluded.expires_at`,
		key, query, yearsBack, string(blob),
		now.Format(time.RFC3339Nano), now.Add(c.ttl).Format(time.RFC3339Nano),
	)
	return err == nil
}

// Clear removes every entry and returns the number removed.
func (c *Cache) Clear() (int, error) {
	if !c.enabled {
		return 0, nil
	}
	res, err := c.db.Exec(`DELETE FROM results`)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Stats reports entry count and stored payload size.
func (c *Cache) Stats() (Stats, error) {
	st := Stats{Enabled: c.enabled, TTL: c.ttl, Path: c.path}
	if !c.enabled {
		return st, nil
	}

	err := c.db.QueryRow(
		`SELECT count(*), coalesce(sum(length(papers)), 0) FROM results`,
	).Scan(&st.Entries, &st.TotalBytes)
	if err != nil {
		return st, fmt.Errorf("reading cache stats: %w", err)
	}
	return st, nil
}

func (c *Cache) delete(key string) {
	c.db.Exec(`DELETE FROM results WHERE key = ?`, key)
}
