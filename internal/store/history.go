package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dosewatch/dosewatch/internal/reminder"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	tag        TEXT NOT NULL,
	title      TEXT NOT NULL,
	body       TEXT NOT NULL,
	count      INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at);
`

// HistoryEntry is one delivered notification.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Tag       string    `json:"tag"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// History records delivered alerts in a local sqlite database so the CLI
// can show what the daemon notified about. It is observability only; every
// caller treats recording failures as non-fatal.
type History struct {
	db *sql.DB
}

// OpenHistory opens (creating if needed) the history database at path.
// Use ":memory:" for an ephemeral store in tests.
func OpenHistory(path string) (*History, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &History{db: db}, nil
}

// RecordAlert appends a delivered alert. Implements reminder.HistorySink.
func (h *History) RecordAlert(a reminder.Alert) error {
	_, err := h.db.Exec(
		`INSERT INTO notifications (id, tag, title, body, count, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), a.Tag, a.Title, a.Body, a.Count, time.Now().UTC(),
	)
	return err
}

// Recent returns up to limit entries, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, tag, title, body, count, created_at FROM notifications ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Tag, &e.Title, &e.Body, &e.Count, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}

var _ reminder.HistorySink = (*History)(nil)
