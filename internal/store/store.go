// Package store persists hearing transcripts, one record per session.
// Writes are upserts keyed by the caller-supplied session id; concurrent
// writes to one id are last-write-wins, no serialization.
package store

import (
	"context"

	"github.com/elefant-coder/hearing-chatbot/internal/hearing"
)

// Store is the transcript persistence contract.
type Store interface {
	// Upsert creates the session on first write and replaces its message
	// sequence on every later write. CreatedAt is set once, UpdatedAt on
	// every write.
	Upsert(ctx context.Context, session hearing.Session) error

	// Get returns a session by id; the bool reports whether it exists.
	Get(ctx context.Context, id string) (hearing.Session, bool, error)

	// List returns all sessions ordered by UpdatedAt descending.
	List(ctx context.Context) ([]hearing.Session, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)

	Close() error
}
