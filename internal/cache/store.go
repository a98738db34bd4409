// Package cache provides the durable local key-value store that backs
// every screenful of data: timestamped JSON entries in a SQLite database,
// namespaced per account, with advisory freshness. Reads and writes fail
// soft; a storage or parse problem is indistinguishable from a cache miss.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultTTL is how long an entry counts as fresh unless the caller
// overrides it.
const DefaultTTL = 5 * time.Minute

// Store is a durable key-value store of timestamped JSON entries.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
	now     func() time.Time
}

// Open opens (creating if needed) the store at the given path.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("failed to open read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB, now: time.Now}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			key       TEXT PRIMARY KEY,
			data      TEXT NOT NULL,
			timestamp INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to initialize store schema: %w", err)
	}
	return nil
}

// Close closes both database handles.
func (s *Store) Close() error {
	var firstErr error
	for _, db := range []*sql.DB{s.readDB, s.writeDB} {
		if db == nil {
			continue
		}
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Store) getRaw(key string) ([]byte, int64, bool) {
	var data []byte
	var ts int64
	err := s.readDB.QueryRow(`SELECT data, timestamp FROM entries WHERE key = ?`, key).Scan(&data, &ts)
	if err != nil {
		return nil, 0, false
	}
	return data, ts, true
}

func (s *Store) setRaw(key string, data []byte) {
	_, err := s.writeDB.Exec(`
		INSERT INTO entries (key, data, timestamp) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, timestamp = excluded.timestamp
	`, key, data, s.now().UnixMilli())
	if err != nil {
		slog.Debug("cache write dropped", "key", key, "error", err)
	}
}

// Get returns the stored value for key. An absent entry, an unreadable
// entry and a storage failure all report a plain miss.
func Get[T any](s *Store, key string) (T, bool) {
	var v T
	data, _, ok := s.getRaw(key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		slog.Debug("cache entry unreadable, treating as miss", "key", key, "error", err)
		var zero T
		return zero, false
	}
	return v, true
}

// Set stores value under key, overwriting any prior entry. Failures are
// swallowed: the call is then a no-op, not an error.
func Set[T any](s *Store, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Debug("cache write dropped, value not serializable", "key", key, "error", err)
		return
	}
	s.setRaw(key, data)
}

// IsFresh reports whether an entry exists and was written less than ttl
// ago. Staleness is advisory: nothing in the store invalidates entries
// eagerly, callers use this to decide whether a refetch is worth it.
func (s *Store) IsFresh(key string, ttl time.Duration) bool {
	_, ts, ok := s.getRaw(key)
	if !ok {
		return false
	}
	return s.now().Sub(time.UnixMilli(ts)) < ttl
}

// Delete removes the entry for key, if any.
func (s *Store) Delete(key string) {
	if _, err := s.writeDB.Exec(`DELETE FROM entries WHERE key = ?`, key); err != nil {
		slog.Debug("cache delete dropped", "key", key, "error", err)
	}
}

// DeletePrefix removes every entry whose key starts with prefix. The
// substr comparison sidesteps LIKE wildcard escaping.
func (s *Store) DeletePrefix(prefix string) {
	if _, err := s.writeDB.Exec(`DELETE FROM entries WHERE substr(key, 1, length(?)) = ?`, prefix, prefix); err != nil {
		slog.Debug("cache prefix delete dropped", "prefix", prefix, "error", err)
	}
}
