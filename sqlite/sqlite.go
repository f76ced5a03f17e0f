// Package sqlite implements execai.TranscriptStore on a SQLite key/value
// table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/execai"
	"github.com/fwojciec/execai/json"
	_ "modernc.org/sqlite"
)

var _ execai.TranscriptStore = (*Store)(nil)

// Store keeps the transcript as a JSON value under execai.TranscriptKey.
type Store struct {
	db  *sql.DB
	key string
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the row key. Intended for tests sharing a database.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// Open opens (or creates) the database at path and ensures the kv table
// exists. Use ":memory:" for a throwaway database.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	s := &Store{db: db, key: execai.TranscriptKey, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored transcript.
func (s *Store) Save(ctx context.Context, transcript []execai.Message) error {
	value, err := json.MarshalTranscript(transcript)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
	`, s.key, string(value), s.now().UnixMicro())
	if err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Load returns the stored transcript.
func (s *Store) Load(ctx context.Context) ([]execai.Message, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, execai.ErrNoTranscript
	}
	if err != nil {
		return nil, fmt.Errorf("query transcript: %w", err)
	}
	return json.UnmarshalTranscript([]byte(value))
}

// Clear deletes the stored transcript.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("delete transcript: %w", err)
	}
	return nil
}
