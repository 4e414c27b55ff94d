// Package prefs persists user preferences such as the selected language
// across sessions.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/mdwloc/foundation/core/error"
)

// Preference is one stored key-value pair
type Preference struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Store defines the interface for preference persistence
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	All(ctx context.Context) ([]Preference, error)
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns the default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	path := "./data/preferences.db"
	if dir, err := os.UserConfigDir(); err == nil {
		path = filepath.Join(dir, "mdwloc", "preferences.db")
	}
	return SQLiteConfig{Path: path}
}

// NewSQLiteStore opens or creates the preference database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, dbError(err, "failed to create directory", "prefs.NewSQLiteStore")
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, dbError(err, "failed to open database", "prefs.NewSQLiteStore")
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema", "prefs.NewSQLiteStore")
	}

	return store, nil
}

// initSchema creates the preferences table
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Get returns the value stored under key
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, dbError(err, "failed to read preference", "prefs.Get").WithDetail("key", key)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return dbError(err, "failed to write preference", "prefs.Set").WithDetail("key", key)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return dbError(err, "failed to delete preference", "prefs.Delete").WithDetail("key", key)
	}
	return nil
}

// All returns every preference ordered by key
func (s *SQLiteStore) All(ctx context.Context) ([]Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT key, value, updated_at FROM preferences ORDER BY key`)
	if err != nil {
		return nil, dbError(err, "failed to query preferences", "prefs.All")
	}
	defer rows.Close()

	var prefs []Preference
	for rows.Next() {
		var p Preference
		if err := rows.Scan(&p.Key, &p.Value, &p.UpdatedAt); err != nil {
			return nil, dbError(err, "failed to scan preference", "prefs.All")
		}
		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to iterate preferences", "prefs.All")
	}
	return prefs, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemoryStore is an in-memory implementation for tests and ephemeral runs
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]Preference
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]Preference)}
}

// Get returns the value stored under key
func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.values[key]
	return p.Value, ok, nil
}

// Set stores value under key
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = Preference{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return nil
}

// Delete removes key
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// All returns every preference ordered by key
func (m *MemoryStore) All(_ context.Context) ([]Preference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefs := make([]Preference, 0, len(m.values))
	for _, p := range m.values {
		prefs = append(prefs, p)
	}
	sort.Slice(prefs, func(i, j int) bool { return prefs[i].Key < prefs[j].Key })
	return prefs, nil
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}

func dbError(err error, message, operation string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation(operation)
}
