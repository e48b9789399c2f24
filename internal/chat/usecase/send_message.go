package usecase

import (
	"context"
	"time"

	"school-assistant/internal/chat"
	"school-assistant/internal/model"
	"school-assistant/internal/session"
	"school-assistant/internal/toolctx"
)

// NewSession allocates a fresh conversation session.
func (uc *implUseCase) NewSession(ctx context.Context, sc model.Scope) (chat.NewSessionOutput, error) {
	id := uc.sessions.Create()
	uc.l.Infof(ctx, "chat: created session %s for user %s", id, sc.UserID)
	return chat.NewSessionOutput{SessionID: id}, nil
}

// SendMessage runs one conversation turn.
//
// Failure policy: the user turn is appended before the assistant runs and is
// never rolled back. When the assistant fails, no assistant turn is recorded
// and the error surfaces; a retry sees the same history plus the failed
// user message.
func (uc *implUseCase) SendMessage(ctx context.Context, sc model.Scope, input chat.SendMessageInput) (chat.SendMessageOutput, error) {
	if input.Message == "" {
		return chat.SendMessageOutput{}, chat.ErrEmptyMessage
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uc.sessions.Create()
		uc.l.Infof(ctx, "chat: implicit session %s for user %s", sessionID, sc.UserID)
	}

	history := uc.sessions.History(sessionID)
	uc.sessions.Append(sessionID, session.RoleUser, input.Message)

	runCtx := toolctx.With(ctx, &toolctx.RunContext{
		Token:      sc.AuthToken,
		BackendURL: uc.backendURL,
		UserID:     sc.UserID,
	})

	result, err := uc.root.Handle(runCtx, input.Message, history)
	if err != nil {
		uc.l.Errorf(ctx, "chat: session %s: assistant failed: %v", sessionID, err)
		return chat.SendMessageOutput{}, chat.ErrAssistantFailed
	}

	uc.sessions.Append(sessionID, session.RoleAssistant, result.Text)

	return chat.SendMessageOutput{
		SessionID: sessionID,
		Reply:     result.Text,
		AgentID:   result.AgentID,
		Timestamp: time.Now(),
	}, nil
}

// ClearSession tears down a session and its history.
func (uc *implUseCase) ClearSession(ctx context.Context, sc model.Scope, sessionID string) error {
	if !uc.sessions.Clear(sessionID) {
		return chat.ErrSessionNotFound
	}
	uc.l.Infof(ctx, "chat: cleared session %s for user %s", sessionID, sc.UserID)
	return nil
}
