package chat

import "time"

// NewSessionOutput is the result of allocating a conversation session.
type NewSessionOutput struct {
	SessionID string
}

// SendMessageInput is one user turn. SessionID may be empty or unknown; the
// conversation continues under whatever id the output reports.
type SendMessageInput struct {
	SessionID string
	Message   string
}

// SendMessageOutput is the assistant's turn.
type SendMessageOutput struct {
	SessionID string
	Reply     string
	AgentID   string
	Timestamp time.Time
}
