// Package session persists session and run state between invocations
// using SQLite: whether an authenticated browsing session is believed
// to exist, and a summary of the most recent extraction run. The
// extraction pipeline itself never consults this; it informs the
// caller's pre-flight decision only.
package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// RunInfo summarizes one completed extraction run.
type RunInfo struct {
	At       time.Time `json:"at"`
	Found    int       `json:"found"`
	Accepted int       `json:"accepted"`
	Query    string    `json:"query"`
	Output   string    `json:"output,omitempty"`
}

// Store manages session state using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a session store with the given database path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the state table if it doesn't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) getValue(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query state: %w", err)
	}
	return value, true, nil
}

func (s *Store) setValue(key, value string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO state (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return fmt.Errorf("failed to update state: %w", err)
	}
	return nil
}

// LoggedIn reports whether an authenticated session is believed to be
// available. Defaults to false when never set.
func (s *Store) LoggedIn() (bool, error) {
	value, found, err := s.getValue("logged_in")
	if err != nil {
		return false, err
	}
	return found && value == "true", nil
}

// SetLoggedIn records the session flag.
func (s *Store) SetLoggedIn(loggedIn bool) error {
	value := "false"
	if loggedIn {
		value = "true"
	}
	return s.setValue("logged_in", value)
}

// LastRun returns the most recent recorded run, or nil when no run has
// been recorded yet.
func (s *Store) LastRun() (*RunInfo, error) {
	value, found, err := s.getValue("last_run")
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var info RunInfo
	if err := json.Unmarshal([]byte(value), &info); err != nil {
		return nil, fmt.Errorf("failed to unmarshal last run: %w", err)
	}
	return &info, nil
}

// RecordRun stores the summary of a completed run.
func (s *Store) RecordRun(info RunInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal run info: %w", err)
	}
	return s.setValue("last_run", string(data))
}
