package hearing

import "time"

// Message roles. The hearing flow only ever produces user and assistant
// turns; the system instruction is injected by the relay and never stored.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single conversation turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is one end-to-end hearing conversation, keyed by a
// caller-supplied opaque id. Messages grow by append only; every write
// replaces the stored sequence with a superset supplied by the caller.
type Session struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
