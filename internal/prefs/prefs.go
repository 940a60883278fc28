// Package prefs persists user preferences — the favorites set, the UI
// language, and the theme — as opaque key/value entries in a local sqlite
// database.
//
// Read failures are deliberately swallowed: a missing or corrupt entry reads
// as "no data" (empty favorites, empty language/theme) so the application
// always starts with safe defaults. Write failures propagate to the caller.
//
// Favorite add/remove is a read-modify-write of the whole set. A store-level
// mutex serializes those sequences, so two near-simultaneous toggles cannot
// interleave and drop each other's write.
package prefs

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Storage keys, unchanged from the original persisted format.
const (
	keyFavorites = "crypto_favorites"
	keyLanguage  = "app_language"
	keyTheme     = "app_theme"
)

// Store is a sqlite-backed preference store. Safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if necessary) the preference database at path.
// Parent directories are created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create preference directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference database: %w", err)
	}

	// Single connection: sqlite handles one writer at a time, and the store
	// serializes writes itself anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS preferences (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize preference schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// get returns the stored value for key, or "" when absent or unreadable.
// Read failures degrade to "no data" rather than surfacing.
func (s *Store) get(key string) string {
	var value string
	if err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value); err != nil {
		return ""
	}
	return value
}

// set upserts the value for key.
func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}

// Favorites returns the persisted favorite IDs. A missing or corrupt entry
// yields an empty slice, never an error.
func (s *Store) Favorites() []string {
	raw := s.get(keyFavorites)
	if raw == "" {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return []string{}
	}
	return ids
}

// SaveFavorites overwrites the entire favorites entry in one statement.
func (s *Store) SaveFavorites(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	return s.set(keyFavorites, string(raw))
}

// AddFavorite appends id to the favorites set. Adding an existing member is
// a no-op. The read-modify-write runs under the store mutex.
func (s *Store) AddFavorite(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.Favorites()
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return s.SaveFavorites(append(ids, id))
}

// RemoveFavorite removes id from the favorites set. Removing a non-member is
// a no-op (the set is rewritten unchanged).
func (s *Store) RemoveFavorite(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.Favorites()
	kept := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return s.SaveFavorites(kept)
}

// Language returns the persisted language code, or "" when none is stored.
// No validation happens here; unsupported codes are the translator's problem.
func (s *Store) Language() string {
	return s.get(keyLanguage)
}

// SaveLanguage persists the language code.
func (s *Store) SaveLanguage(code string) error {
	return s.set(keyLanguage, code)
}

// Theme returns the persisted theme code, or "" when none is stored.
func (s *Store) Theme() string {
	return s.get(keyTheme)
}

// SaveTheme persists the theme code.
func (s *Store) SaveTheme(theme string) error {
	return s.set(keyTheme, theme)
}
