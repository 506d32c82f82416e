// Package pubs manages the registry of tracked publications: named
// feeds whose entries can be pulled through the extraction pipeline as
// an alternative to scraping the inbox page.
package pubs

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Custom errors for publication operations
var (
	ErrPublicationNotFound = errors.New("publication not found")
	ErrDuplicateFeedURL    = errors.New("publication with this feed URL already exists")
)

// Publication represents one tracked publication.
type Publication struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	FeedURL       string     `json:"feed_url"`
	CreatedAt     time.Time  `json:"created_at"`
	LastFetchedAt *time.Time `json:"last_fetched_at,omitempty"`
}

// Store manages publications using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a publication store with the given database path.
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

// initSchema creates the publications table if it doesn't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS publications (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		feed_url TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		last_fetched_at TEXT
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create registers a new publication.
func (s *Store) Create(name, feedURL string) (*Publication, error) {
	// Check for duplicate URL first so the caller gets a sentinel
	// error instead of a driver-specific constraint failure.
	var existing string
	err := s.db.QueryRow("SELECT id FROM publications WHERE feed_url = ?", feedURL).Scan(&existing)
	if err == nil {
		return nil, ErrDuplicateFeedURL
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check for duplicate URL: %w", err)
	}

	pub := &Publication{
		ID:        uuid.New(),
		Name:      name,
		FeedURL:   feedURL,
		CreatedAt: time.Now(),
	}

	_, err = s.db.Exec(
		"INSERT INTO publications (id, name, feed_url, created_at) VALUES (?, ?, ?, ?)",
		pub.ID.String(), pub.Name, pub.FeedURL, pub.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert publication: %w", err)
	}

	return pub, nil
}

// Get returns the publication with the given ID.
func (s *Store) Get(id uuid.UUID) (*Publication, error) {
	row := s.db.QueryRow(
		"SELECT id, name, feed_url, created_at, last_fetched_at FROM publications WHERE id = ?",
		id.String(),
	)
	pub, err := scanPublication(row)
	if err == sql.ErrNoRows {
		return nil, ErrPublicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query publication: %w", err)
	}
	return pub, nil
}

// List returns all publications ordered by creation time.
func (s *Store) List() ([]Publication, error) {
	rows, err := s.db.Query(
		"SELECT id, name, feed_url, created_at, last_fetched_at FROM publications ORDER BY created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query publications: %w", err)
	}
	defer rows.Close()

	var pubs []Publication
	for rows.Next() {
		pub, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan publication: %w", err)
		}
		pubs = append(pubs, *pub)
	}
	return pubs, rows.Err()
}

// Delete removes the publication with the given ID.
func (s *Store) Delete(id uuid.UUID) error {
	result, err := s.db.Exec("DELETE FROM publications WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete publication: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deletion: %w", err)
	}
	if affected == 0 {
		return ErrPublicationNotFound
	}
	return nil
}

// TouchFetched records that the publication's feed was fetched at t.
func (s *Store) TouchFetched(id uuid.UUID, t time.Time) error {
	result, err := s.db.Exec(
		"UPDATE publications SET last_fetched_at = ? WHERE id = ?",
		t.Format(time.RFC3339), id.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update publication: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return ErrPublicationNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPublication(row scanner) (*Publication, error) {
	var (
		idStr       string
		name        string
		feedURL     string
		createdStr  string
		fetchedNull sql.NullString
	)
	if err := row.Scan(&idStr, &name, &feedURL, &createdStr, &fetchedNull); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid publication ID %q: %w", idStr, err)
	}
	createdAt, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdStr, err)
	}

	pub := &Publication{
		ID:        id,
		Name:      name,
		FeedURL:   feedURL,
		CreatedAt: createdAt,
	}
	if fetchedNull.Valid {
		fetched, err := time.Parse(time.RFC3339, fetchedNull.String)
		if err != nil {
			return nil, fmt.Errorf("invalid last_fetched_at %q: %w", fetchedNull.String, err)
		}
		pub.LastFetchedAt = &fetched
	}
	return pub, nil
}
