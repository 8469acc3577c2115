package model

import "time"

// Role tags the speaker of a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Conversation stores metadata about a chat session. It is owned by the
// caller and passed by ID into inference and export calls.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Turn is one message in a conversation. Turns are immutable once appended.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is a conversation together with its ordered turns.
type Transcript struct {
	Conversation
	Turns []Turn `json:"turns"`
}

// StreamResponse is a single chunk of a streamed assistant reply.
// The final chunk carries the conversation ID so a client that started a new
// conversation learns it.
type StreamResponse struct {
	Content        string `json:"content"`
	Done           bool   `json:"done"`
	ConversationID string `json:"conversation_id,omitempty"`
	Error          string `json:"error,omitempty"`
}
