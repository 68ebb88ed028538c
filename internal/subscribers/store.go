// Package subscribers is the durable registry of chats that receive
// scheduled reminders.
package subscribers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Subscriber is one chat subscribed to reminders.
type Subscriber struct {
	ChatID   int64
	Username string
	AddedAt  time.Time
}

// Store is a SQLite-backed subscriber repository.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// New opens (and if needed creates) the subscriber database under
// dataDir.
func New(dataDir string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "subscribers.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS subscribers (
			chat_id INTEGER PRIMARY KEY,
			username TEXT NOT NULL DEFAULT '',
			added_at TEXT NOT NULL
		);
	`); err != nil {
		return nil, fmt.Errorf("failed to create subscribers table: %v", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add registers a chat. Re-adding an existing chat updates the
// username and keeps the original added_at.
func (s *Store) Add(ctx context.Context, chatID int64, username string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscribers (chat_id, username, added_at) VALUES (?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET username = excluded.username
	`, chatID, username, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to add subscriber: %v", err)
	}
	s.logger.Debug("Added subscriber", "chat_id", chatID, "username", username)
	return nil
}

// Remove unregisters a chat. Removing an unknown chat is not an error.
func (s *Store) Remove(ctx context.Context, chatID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM subscribers WHERE chat_id = ?`, chatID)
	if err != nil {
		return fmt.Errorf("failed to remove subscriber: %v", err)
	}
	s.logger.Debug("Removed subscriber", "chat_id", chatID)
	return nil
}

// List returns all subscribers ordered by registration time.
func (s *Store) List(ctx context.Context) ([]Subscriber, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT chat_id, username, added_at FROM subscribers ORDER BY added_at, chat_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %v", err)
	}
	defer rows.Close()

	var subs []Subscriber
	for rows.Next() {
		var (
			sub     Subscriber
			addedAt string
		)
		if err := rows.Scan(&sub.ChatID, &sub.Username, &addedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %v", err)
		}
		sub.AddedAt, _ = time.Parse(time.RFC3339, addedAt)
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
