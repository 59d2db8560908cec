package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/elefant-coder/hearing-chatbot/internal/hearing"
)

const schema = `
CREATE TABLE IF NOT EXISTS hearing_sessions (
	id         TEXT PRIMARY KEY,
	messages   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_hearing_sessions_updated_at
	ON hearing_sessions (updated_at DESC);
`

// SQLiteStore is the sqlite-backed transcript store. Messages are stored
// as a JSON array in a single column, matching the one-record-per-session
// shape of the persisted contract.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open opens (or creates) the sqlite database at path.
func Open(path string, logger zerolog.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info().Str("path", path).Msg("Transcript store opened")

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Upsert writes a session record. The stored message sequence is replaced
// wholesale; the caller supplies a prefix-compatible superset of what was
// there before.
func (s *SQLiteStore) Upsert(ctx context.Context, session hearing.Session) error {
	if session.ID == "" {
		return persistenceError("upsert", fmt.Errorf("session id cannot be empty"))
	}

	payload, err := json.Marshal(session.Messages)
	if err != nil {
		return persistenceError("upsert", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO hearing_sessions (id, messages, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			messages   = excluded.messages,
			updated_at = excluded.updated_at`,
		session.ID, string(payload), now, now,
	)
	if err != nil {
		return persistenceError("upsert", err)
	}

	s.logger.Debug().
		Str("session_id", session.ID).
		Int("messages", len(session.Messages)).
		Msg("Session saved")

	return nil
}

// Get returns a single session by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (hearing.Session, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, messages, created_at, updated_at
		FROM hearing_sessions WHERE id = ?`, id)

	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return hearing.Session{}, false, nil
	}
	if err != nil {
		return hearing.Session{}, false, persistenceError("get", err)
	}

	return session, true, nil
}

// List returns every session, most recently updated first.
func (s *SQLiteStore) List(ctx context.Context) ([]hearing.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, messages, created_at, updated_at
		FROM hearing_sessions
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, persistenceError("list", err)
	}
	defer rows.Close()

	sessions := []hearing.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, persistenceError("list", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list", err)
	}

	return sessions, nil
}

// Count returns the number of stored sessions.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hearing_sessions`).Scan(&count)
	if err != nil {
		return 0, persistenceError("count", err)
	}
	return count, nil
}

// Checkpoint flushes the WAL back into the main database file. Used by
// the maintenance loop; never touches session content.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return persistenceError("checkpoint", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (hearing.Session, error) {
	var (
		session hearing.Session
		payload string
	)
	if err := row.Scan(&session.ID, &payload, &session.CreatedAt, &session.UpdatedAt); err != nil {
		return hearing.Session{}, err
	}

	if err := json.Unmarshal([]byte(payload), &session.Messages); err != nil {
		return hearing.Session{}, fmt.Errorf("corrupt messages for session %s: %w", session.ID, err)
	}

	return session, nil
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", hearing.ErrPersistence, op, err)
}
