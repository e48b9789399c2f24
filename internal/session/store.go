package session

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one immutable turn in a conversation.
type Message struct {
	Role    Role
	Content string
}

// Store keeps per-conversation message history keyed by an opaque session id.
//
// Policy: unknown ids are lazily created. History on an unknown id returns an
// empty history and materializes the session; Append creates the session when
// absent. The store never expires sessions on its own — Clear is the only way
// a session goes away.
type Store interface {
	// Create allocates a fresh session with empty history and returns its id.
	Create() string

	// Exists reports whether the session id is known.
	Exists(id string) bool

	// History returns the ordered message history for the session.
	History(id string) []Message

	// Append adds a message to the end of the session's history.
	Append(id string, role Role, content string)

	// Clear removes the session and reports whether it previously existed.
	Clear(id string) bool
}
