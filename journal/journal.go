// Package journal persists hotkey dispatch records to a local SQLite
// database, one row per dispatched event. Hosts use it to answer "what
// did that keystroke do" questions after the fact.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one dispatch record.
type Entry struct {
	// At is when the dispatch happened.
	At time.Time

	// Key is the canonical event spec ("ctrl+s").
	Key string

	// Kind is the event kind ("keydown", "keypress", "keyup").
	Kind string

	// Scope is the dispatch path: "focus", "ambient" or "global".
	Scope string

	// Action is the action that ran, empty when none matched.
	Action string

	// Handled reports whether a handler ran.
	Handled bool
}

// Recorder accepts dispatch records. *Journal implements it; the Manager
// takes the interface so tests can record in memory.
type Recorder interface {
	Record(e Entry) error
}

// Journal stores dispatch records in SQLite.
type Journal struct {
	db *sql.DB
}

// Open opens a journal database, creating the file and its parent
// directory as needed.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS dispatches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		at TEXT NOT NULL,
		key TEXT NOT NULL,
		kind TEXT NOT NULL,
		scope TEXT NOT NULL,
		action TEXT,
		handled INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_dispatches_key ON dispatches(key);
	CREATE INDEX IF NOT EXISTS idx_dispatches_scope ON dispatches(scope);
	`
	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize journal schema: %w", err)
	}
	return nil
}

// Record appends one dispatch. A zero At is stamped with the current
// time.
func (j *Journal) Record(e Entry) error {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err := j.db.Exec(
		`INSERT INTO dispatches (at, key, kind, scope, action, handled)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		at.Format(time.RFC3339Nano), e.Key, e.Kind, e.Scope, e.Action, e.Handled,
	)
	if err != nil {
		return fmt.Errorf("record dispatch: %w", err)
	}
	return nil
}

// Recent returns the newest n entries, newest first.
func (j *Journal) Recent(n int) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT at, key, kind, scope, COALESCE(action, ''), handled
		 FROM dispatches ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("load journal entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&at, &e.Key, &e.Kind, &e.Scope, &e.Action, &e.Handled); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			t = time.Now()
		}
		e.At = t
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (j *Journal) Count() (int, error) {
	var count int
	if err := j.db.QueryRow(`SELECT COUNT(*) FROM dispatches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count journal entries: %w", err)
	}
	return count, nil
}

// Clear deletes all entries.
func (j *Journal) Clear() error {
	if _, err := j.db.Exec(`DELETE FROM dispatches`); err != nil {
		return fmt.Errorf("clear journal: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}
