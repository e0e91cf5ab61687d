package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// HistoryEntry is one saved conversation in the history index
type HistoryEntry struct {
	SessionID    string
	Title        string
	StartTime    time.Time
	SavedAt      time.Time
	MessageCount int
	SnapshotPath string
}

// HistoryStore indexes saved session snapshots in a local SQLite database.
// The snapshot files themselves are written by Session.Save; the store only
// tracks where they live.
type HistoryStore struct {
	db *sql.DB
}

// OpenHistory opens (creating if needed) the history database at path
func OpenHistory(path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &HistoryError{Op: "open", Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &HistoryError{Op: "open", Err: err}
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &HistoryError{Op: "open", Err: err}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		session_id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		start_time TEXT NOT NULL,
		saved_at TEXT NOT NULL,
		message_count INTEGER NOT NULL,
		snapshot_path TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, &HistoryError{Op: "open", Err: err}
	}

	return &HistoryStore{db: db}, nil
}

// NewHistoryStore wraps an existing database handle whose schema is already
// in place. OpenHistory is the normal entry point.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Close closes the underlying database
func (h *HistoryStore) Close() error {
	return h.db.Close()
}

// Record upserts an entry; saving the same session twice updates its row
func (h *HistoryStore) Record(entry HistoryEntry) error {
	query := `
	INSERT INTO conversations (session_id, title, start_time, saved_at, message_count, snapshot_path)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(session_id) DO UPDATE SET
		title = excluded.title,
		saved_at = excluded.saved_at,
		message_count = excluded.message_count,
		snapshot_path = excluded.snapshot_path`
	_, err := h.db.Exec(query,
		entry.SessionID,
		entry.Title,
		entry.StartTime.Format(time.RFC3339Nano),
		entry.SavedAt.Format(time.RFC3339Nano),
		entry.MessageCount,
		entry.SnapshotPath,
	)
	if err != nil {
		return &HistoryError{Op: "record", Err: err}
	}
	return nil
}

// List returns all entries, most recently saved first
func (h *HistoryStore) List() ([]HistoryEntry, error) {
	rows, err := h.db.Query(`
		SELECT session_id, title, start_time, saved_at, message_count, snapshot_path
		FROM conversations ORDER BY saved_at DESC`)
	if err != nil {
		return nil, &HistoryError{Op: "list", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var entries []HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, &HistoryError{Op: "list", Err: err}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, &HistoryError{Op: "list", Err: err}
	}
	return entries, nil
}

// Get returns the entry for a session id
func (h *HistoryStore) Get(sessionID string) (*HistoryEntry, error) {
	row := h.db.QueryRow(`
		SELECT session_id, title, start_time, saved_at, message_count, snapshot_path
		FROM conversations WHERE session_id = ?`, sessionID)
	entry, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &HistoryError{Op: "get", Err: fmt.Errorf("session not found: %s", sessionID)}
	}
	if err != nil {
		return nil, &HistoryError{Op: "get", Err: err}
	}
	return &entry, nil
}

// Remove deletes the entry for a session id; the snapshot file is left alone
func (h *HistoryStore) Remove(sessionID string) error {
	result, err := h.db.Exec(`DELETE FROM conversations WHERE session_id = ?`, sessionID)
	if err != nil {
		return &HistoryError{Op: "remove", Err: err}
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return &HistoryError{Op: "remove", Err: err}
	}
	if affected == 0 {
		return &HistoryError{Op: "remove", Err: fmt.Errorf("session not found: %s", sessionID)}
	}
	return nil
}

func scanEntry(scan func(...interface{}) error) (HistoryEntry, error) {
	var entry HistoryEntry
	var startTime, savedAt string
	if err := scan(&entry.SessionID, &entry.Title, &startTime, &savedAt, &entry.MessageCount, &entry.SnapshotPath); err != nil {
		return entry, err
	}
	var err error
	if entry.StartTime, err = time.Parse(time.RFC3339Nano, startTime); err != nil {
		return entry, fmt.Errorf("corrupt start_time for %s: %w", entry.SessionID, err)
	}
	if entry.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
		return entry, fmt.Errorf("corrupt saved_at for %s: %w", entry.SessionID, err)
	}
	return entry, nil
}
