// Package storage persists player progress in SQLite. Uses the pure-Go
// modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/hoomehr/perxplor/internal/game"
)

// Store manages the SQLite database holding session snapshots. It implements
// game.Store: the engine saves full snapshots and the newest write wins, so
// replaying a save is always safe.
type Store struct {
	db *sql.DB
}

// Treasure state spellings in the treasure_states table.
const (
	stateOpened    = "opened"
	stateCollected = "collected"
)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			identity TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS treasure_states (
			identity TEXT NOT NULL,
			treasure_id TEXT NOT NULL,
			state TEXT NOT NULL,
			PRIMARY KEY (identity, treasure_id)
		);
		CREATE INDEX IF NOT EXISTS idx_treasure_states_identity
			ON treasure_states(identity);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the identity's saved snapshot, or (nil, nil) when the
// identity has never been saved.
func (s *Store) Load(identity string) (*game.SessionSnapshot, error) {
	var snap game.SessionSnapshot
	err := s.db.QueryRow(
		"SELECT score FROM sessions WHERE identity = ?",
		identity,
	).Scan(&snap.Score)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load session: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT treasure_id, state
		 FROM treasure_states
		 WHERE identity = ?
		 ORDER BY treasure_id`,
		identity,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load treasure states: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, state string
		if err := rows.Scan(&id, &state); err != nil {
			return nil, fmt.Errorf("storage: cannot scan treasure state: %w", err)
		}
		switch state {
		case stateCollected:
			snap.Collected = append(snap.Collected, id)
		case stateOpened:
			snap.Opened = append(snap.Opened, id)
		default:
			return nil, fmt.Errorf("storage: unknown treasure state %q for %s", state, id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &snap, nil
}

// Save replaces the identity's saved progress with the snapshot. The
// session row and its treasure states swap in one transaction, so a
// concurrent Load never sees a half-written snapshot.
func (s *Store) Save(identity string, snap game.SessionSnapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.Exec(
		`INSERT INTO sessions (identity, score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(identity) DO UPDATE
		 SET score = excluded.score, updated_at = CURRENT_TIMESTAMP`,
		identity, snap.Score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}

	if _, err := tx.Exec(
		"DELETE FROM treasure_states WHERE identity = ?", identity,
	); err != nil {
		return fmt.Errorf("storage: cannot clear treasure states: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO treasure_states (identity, treasure_id, state) VALUES (?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare treasure state insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range snap.Opened {
		if _, err := stmt.Exec(identity, id, stateOpened); err != nil {
			return fmt.Errorf("storage: cannot save opened state for %s: %w", id, err)
		}
	}
	for _, id := range snap.Collected {
		if _, err := stmt.Exec(identity, id, stateCollected); err != nil {
			return fmt.Errorf("storage: cannot save collected state for %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit save: %w", err)
	}
	return nil
}

// Identities returns every identity with saved progress, alphabetically.
func (s *Store) Identities() ([]string, error) {
	rows, err := s.db.Query("SELECT identity FROM sessions ORDER BY identity")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list identities: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan identity: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Reset deletes an identity's saved progress. Resetting an identity that
// has none is not an error.
func (s *Store) Reset(identity string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin reset: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(
		"DELETE FROM treasure_states WHERE identity = ?", identity,
	); err != nil {
		return fmt.Errorf("storage: cannot reset treasure states: %w", err)
	}
	if _, err := tx.Exec(
		"DELETE FROM sessions WHERE identity = ?", identity,
	); err != nil {
		return fmt.Errorf("storage: cannot reset session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit reset: %w", err)
	}
	return nil
}

// Ensure Store implements the engine's persistence interface.
var _ game.Store = (*Store)(nil)
