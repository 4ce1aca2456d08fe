package history

import "time"

// Interaction is one persisted request/response pair as returned by
// the backend memory endpoint. Immutable once fetched; this package
// only reads it.
type Interaction struct {
	UserInput     string    `json:"user_input"`
	AgentResponse string    `json:"agent_response"`
	AgentID       string    `json:"agent_id"`
	Timestamp     time.Time `json:"timestamp"`
	ActionsTaken  []string  `json:"actions_taken"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
	AgentID      string    `json:"agent_id,omitempty"`
	ActionsTaken []string  `json:"actions_taken,omitempty"`
}

// Session is a contiguous run of interactions on one calendar date
// with under-30-minute gaps. Rebuilt wholesale on every
// reconstruction, never mutated in place.
type Session struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	Label        string    `json:"label"`
	StartedAt    time.Time `json:"started_at"`
	LastActivity time.Time `json:"last_activity"`
	Messages     []Message `json:"messages"`
	MessageCount int       `json:"message_count"`
}
