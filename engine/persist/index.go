package persist

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SlotInfo is one row of the save-slot index.
type SlotInfo struct {
	Name    string
	Session string
	Turns   int
	SavedAt time.Time
}

// Index is a SQLite catalog of save slots. All writes funnel through the
// single persistence worker, but the mutex also covers ad-hoc reads from the
// front ends.
type Index struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenIndex opens (or creates) the slot index database.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening slot index: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS slots (
	name     TEXT PRIMARY KEY,
	session  TEXT NOT NULL,
	turns    INTEGER NOT NULL,
	saved_at TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating slot index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Record upserts a slot row.
func (ix *Index) Record(info SlotInfo) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	_, err := ix.db.Exec(
		`INSERT INTO slots (name, session, turns, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET session=excluded.session, turns=excluded.turns, saved_at=excluded.saved_at`,
		info.Name, info.Session, info.Turns, info.SavedAt.Format(time.RFC3339),
	)
	return err
}

// List returns all slots, most recent first.
func (ix *Index) List() ([]SlotInfo, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	rows, err := ix.db.Query(`SELECT name, session, turns, saved_at FROM slots ORDER BY saved_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SlotInfo
	for rows.Next() {
		var info SlotInfo
		var savedAt string
		if err := rows.Scan(&info.Name, &info.Session, &info.Turns, &savedAt); err != nil {
			return nil, err
		}
		info.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.db.Close()
}
