package testutil

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory SQLite database with the history
// schema for testing
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
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
		db.Close()
		t.Fatalf("Failed to create conversations table: %v", err)
	}

	return db
}

// CreateTestDB creates a history database with sample conversations
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)

	now := time.Now().UTC().Format(time.RFC3339Nano)
	rows := []struct {
		id    string
		title string
		count int
		path  string
	}{
		{"aaaa1111-0000-0000-0000-000000000001", "What meetings do I have today?", 5, "/tmp/session_a.json"},
		{"bbbb2222-0000-0000-0000-000000000002", "Summarize my inbox", 3, "/tmp/session_b.json"},
	}
	for _, row := range rows {
		_, err := db.Exec(
			`INSERT INTO conversations (session_id, title, start_time, saved_at, message_count, snapshot_path)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			row.id, row.title, now, now, row.count, row.path)
		if err != nil {
			db.Close()
			t.Fatalf("Failed to insert conversation: %v", err)
		}
	}

	return db
}
