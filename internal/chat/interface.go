package chat

import (
	"context"

	"school-assistant/internal/model"
)

// UseCase defines the business logic interface for the chat domain.
type UseCase interface {
	// NewSession allocates a fresh conversation session.
	NewSession(ctx context.Context, sc model.Scope) (NewSessionOutput, error)

	// SendMessage runs one conversation turn through the assistant hierarchy.
	SendMessage(ctx context.Context, sc model.Scope, input SendMessageInput) (SendMessageOutput, error)

	// ClearSession tears down a session and its history.
	ClearSession(ctx context.Context, sc model.Scope, sessionID string) error
}
