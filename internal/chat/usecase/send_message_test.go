package usecase

import (
	"context"
	"errors"
	"testing"

	"school-assistant/internal/agent"
	"school-assistant/internal/chat"
	"school-assistant/internal/model"
	"school-assistant/internal/session"
	"school-assistant/internal/toolctx"
	"school-assistant/pkg/log"
)

// stubRoot records the queries, histories and run contexts it receives.
type stubRoot struct {
	reply     string
	agentID   string
	err       error
	queries   []string
	histories [][]session.Message
	runCtxs   []*toolctx.RunContext
}

func (r *stubRoot) Name() string { return "root" }
func (r *stubRoot) Handle(ctx context.Context, query string, history []session.Message) (agent.Result, error) {
	r.queries = append(r.queries, query)
	r.histories = append(r.histories, history)
	if rc, err := toolctx.From(ctx); err == nil {
		r.runCtxs = append(r.runCtxs, rc)
	} else {
		r.runCtxs = append(r.runCtxs, nil)
	}
	if r.err != nil {
		return agent.Result{}, r.err
	}
	return agent.Result{Text: r.reply, AgentID: r.agentID}, nil
}

func newTestUseCase(root *stubRoot) (*implUseCase, session.Store) {
	store := session.NewMemoryStore()
	return New(log.NewNop(), root, store, ""), store
}

var testScope = model.Scope{UserID: "parent-1", Username: "anita", AuthToken: "tok-123"}

func TestNewSession_FreshIDs(t *testing.T) {
	uc, _ := newTestUseCase(&stubRoot{})

	first, err := uc.NewSession(context.Background(), testScope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.NewSession(context.Background(), testScope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.SessionID == "" || first.SessionID == second.SessionID {
		t.Errorf("expected distinct non-empty session ids, got %q and %q", first.SessionID, second.SessionID)
	}
}

func TestSendMessage_ImplicitSession(t *testing.T) {
	root := &stubRoot{reply: "Hello!", agentID: "root"}
	uc, store := newTestUseCase(root)

	out, err := uc.SendMessage(context.Background(), testScope, chat.SendMessageInput{Message: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.SessionID == "" {
		t.Fatal("expected an implicit session id")
	}
	if out.Reply != "Hello!" || out.AgentID != "root" {
		t.Errorf("unexpected output: %+v", out)
	}

	history := store.History(out.SessionID)
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Role != session.RoleUser || history[0].Content != "hi" {
		t.Errorf("unexpected first turn: %+v", history[0])
	}
	if history[1].Role != session.RoleAssistant || history[1].Content != "Hello!" {
		t.Errorf("unexpected second turn: %+v", history[1])
	}
}

func TestSendMessage_HistoryExcludesCurrentTurn(t *testing.T) {
	root := &stubRoot{reply: "ok", agentID: "root"}
	uc, store := newTestUseCase(root)

	id := store.Create()
	store.Append(id, session.RoleUser, "earlier question")
	store.Append(id, session.RoleAssistant, "earlier answer")

	if _, err := uc.SendMessage(context.Background(), testScope, chat.SendMessageInput{
		SessionID: id,
		Message:   "followup",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.queries[0] != "followup" {
		t.Errorf("unexpected query: %q", root.queries[0])
	}
	history := root.histories[0]
	if len(history) != 2 {
		t.Fatalf("expected history of 2 prior turns, got %d", len(history))
	}
	for _, m := range history {
		if m.Content == "followup" {
			t.Error("current turn must not appear in prior history")
		}
	}
}

func TestSendMessage_InstallsRunContext(t *testing.T) {
	root := &stubRoot{reply: "ok", agentID: "root"}
	uc, _ := newTestUseCase(root)

	if _, err := uc.SendMessage(context.Background(), testScope, chat.SendMessageInput{Message: "q"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rc := root.runCtxs[0]
	if rc == nil {
		t.Fatal("expected a run context to be installed")
	}
	if rc.Token != "tok-123" || rc.UserID != "parent-1" {
		t.Errorf("unexpected run context: %+v", rc)
	}
}

func TestSendMessage_FailureKeepsUserTurnOnly(t *testing.T) {
	root := &stubRoot{err: errors.New("all providers failed")}
	uc, store := newTestUseCase(root)

	id := store.Create()
	_, err := uc.SendMessage(context.Background(), testScope, chat.SendMessageInput{
		SessionID: id,
		Message:   "q",
	})
	if !errors.Is(err, chat.ErrAssistantFailed) {
		t.Fatalf("expected ErrAssistantFailed, got %v", err)
	}

	history := store.History(id)
	if len(history) != 1 {
		t.Fatalf("expected only the user turn, got %d messages", len(history))
	}
	if history[0].Role != session.RoleUser {
		t.Errorf("unexpected surviving turn: %+v", history[0])
	}
}

func TestSendMessage_EmptyMessage(t *testing.T) {
	uc, _ := newTestUseCase(&stubRoot{})
	_, err := uc.SendMessage(context.Background(), testScope, chat.SendMessageInput{})
	if !errors.Is(err, chat.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestSendMessage_MultiTurnOrdering(t *testing.T) {
	root := &stubRoot{reply: "answer", agentID: "root"}
	uc, store := newTestUseCase(root)

	id := store.Create()
	for _, msg := range []string{"one", "two", "three"} {
		if _, err := uc.SendMessage(context.Background(), testScope, chat.SendMessageInput{
			SessionID: id,
			Message:   msg,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	history := store.History(id)
	if len(history) != 6 {
		t.Fatalf("expected 6 messages, got %d", len(history))
	}
	wantUser := []string{"one", "two", "three"}
	for i, want := range wantUser {
		if history[2*i].Role != session.RoleUser || history[2*i].Content != want {
			t.Errorf("turn %d: expected user %q, got %+v", i, want, history[2*i])
		}
		if history[2*i+1].Role != session.RoleAssistant {
			t.Errorf("turn %d: expected assistant reply, got %+v", i, history[2*i+1])
		}
	}
}

func TestClearSession(t *testing.T) {
	uc, store := newTestUseCase(&stubRoot{reply: "ok"})

	id := store.Create()
	store.Append(id, session.RoleUser, "q")

	if err := uc.ClearSession(context.Background(), testScope, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Exists(id) {
		t.Error("session should be gone after clear")
	}

	if err := uc.ClearSession(context.Background(), testScope, "missing"); !errors.Is(err, chat.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
