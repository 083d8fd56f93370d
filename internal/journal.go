package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// JournalEntry is one recorded delivery outcome
type JournalEntry struct {
	ID         int64
	EventID    string
	Recipient  string
	Outcome    Outcome
	Detail     string
	RecordedAt time.Time
}

// Journal is the append-only diagnostic log of every delivery outcome ever
// recorded. It is a sink, not the ledger of record: rows are never updated
// or deleted, and journal failures must not abort a run.
type Journal struct {
	db *sql.DB
}

// OpenJournal opens (creating if needed) the outcome journal at path
func OpenJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &PersistenceError{Path: path, Op: "load", Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &PersistenceError{Path: path, Op: "load", Err: err}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &PersistenceError{Path: path, Op: "load", Err: err}
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS outcomes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id TEXT NOT NULL,
		recipient TEXT NOT NULL,
		outcome TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		_ = db.Close()
		return nil, &PersistenceError{Path: path, Op: "load", Err: err}
	}

	return &Journal{db: db}, nil
}

// Append records one outcome row
func (j *Journal) Append(eventID string, r RecipientResult) error {
	_, err := j.db.Exec(
		`INSERT INTO outcomes (event_id, recipient, outcome, detail, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		eventID, r.Recipient, string(r.Outcome), r.Detail, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return &PersistenceError{Path: "journal", Op: "append", Err: err}
	}
	return nil
}

// Recent returns up to n of the most recently recorded outcomes, newest
// first
func (j *Journal) Recent(n int) ([]JournalEntry, error) {
	rows, err := j.db.Query(
		`SELECT id, event_id, recipient, outcome, detail, recorded_at
		 FROM outcomes ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("journal query failed: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var recorded string
		if err := rows.Scan(&e.ID, &e.EventID, &e.Recipient, (*string)(&e.Outcome), &e.Detail, &recorded); err != nil {
			return nil, fmt.Errorf("journal scan failed: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, recorded); err == nil {
			e.RecordedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal rows iteration error: %w", err)
	}

	return entries, nil
}

// Close closes the underlying database
func (j *Journal) Close() error {
	return j.db.Close()
}
