// Package localstore durably remembers small JSON-encoded values across
// sessions: the user's credentials and the last-known bundle snapshot.
// Values live in a single SQLite key-value table; the pure Go driver keeps
// the binary free of cgo.
package localstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Well-known keys.
const (
	KeyCredentials = "credentials"
	KeyBundle      = "bundle"
)

// Store is a small persistent key-value slot. Read and write failures are
// swallowed: a broken local cache must never take the tool down.
type Store struct {
	db *sql.DB
}

// Open creates the backing database (and parent directories) if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Read decodes the stored value for key into dest and reports whether it
// succeeded. Absence and decode failures both report false; the caller's
// fallback value stays in place.
func (s *Store) Read(key string, dest any) bool {
	var raw []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("localstore read failed")
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("localstore decode failed")
		return false
	}
	return true
}

// Write encodes and stores value under key. Failures are logged at debug
// level only.
func (s *Store) Write(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("localstore encode failed")
		return
	}
	if _, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, raw); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("localstore write failed")
	}
}

// Delete removes key. Failures are swallowed like writes.
func (s *Store) Delete(key string) {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("localstore delete failed")
	}
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
