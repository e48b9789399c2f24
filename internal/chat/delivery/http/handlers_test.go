package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"school-assistant/internal/chat"
	"school-assistant/internal/middleware"
	"school-assistant/internal/model"
	"school-assistant/pkg/log"
)

type stubUseCase struct {
	sendOut  chat.SendMessageOutput
	sendErr  error
	clearErr error
	gotScope model.Scope
	gotInput chat.SendMessageInput
}

func (u *stubUseCase) NewSession(ctx context.Context, sc model.Scope) (chat.NewSessionOutput, error) {
	return chat.NewSessionOutput{SessionID: "sess-1"}, nil
}

func (u *stubUseCase) SendMessage(ctx context.Context, sc model.Scope, input chat.SendMessageInput) (chat.SendMessageOutput, error) {
	u.gotScope = sc
	u.gotInput = input
	return u.sendOut, u.sendErr
}

func (u *stubUseCase) ClearSession(ctx context.Context, sc model.Scope, sessionID string) error {
	return u.clearErr
}

func newTestRouter(uc chat.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	mw := middleware.New(log.NewNop())
	RegisterRoutes(engine.Group("/api/v1"), New(log.NewNop(), uc), mw)
	return engine
}

func TestHandler_NewSession(t *testing.T) {
	engine := newTestRouter(&stubUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/new-session", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var body struct {
		Data newSessionResp `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Data.SessionID != "sess-1" {
		t.Errorf("unexpected session id: %q", body.Data.SessionID)
	}
}

func TestHandler_Send(t *testing.T) {
	uc := &stubUseCase{sendOut: chat.SendMessageOutput{
		SessionID: "sess-1",
		Reply:     "Hello!",
		AgentID:   "school_assistant",
		Timestamp: time.Now(),
	}}
	engine := newTestRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/send",
		strings.NewReader(`{"session_id": "sess-1", "message": "hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok-9")
	req.Header.Set("X-User-ID", "parent-1")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d, body: %s", w.Code, w.Body.String())
	}
	if uc.gotInput.Message != "hi" || uc.gotInput.SessionID != "sess-1" {
		t.Errorf("unexpected input: %+v", uc.gotInput)
	}
	if uc.gotScope.AuthToken != "tok-9" || uc.gotScope.UserID != "parent-1" {
		t.Errorf("expected identity headers in scope, got %+v", uc.gotScope)
	}

	var body struct {
		Data struct {
			SessionID string `json:"session_id"`
			Reply     string `json:"reply"`
			AgentID   string `json:"agent_id"`
			Timestamp string `json:"timestamp"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Data.Reply != "Hello!" || body.Data.AgentID != "school_assistant" {
		t.Errorf("unexpected response data: %+v", body.Data)
	}
	if body.Data.Timestamp == "" {
		t.Error("expected a formatted timestamp")
	}
}

func TestHandler_Send_ValidationError(t *testing.T) {
	engine := newTestRouter(&stubUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/send", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandler_Send_AssistantFailure(t *testing.T) {
	engine := newTestRouter(&stubUseCase{sendErr: chat.ErrAssistantFailed})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/send",
		strings.NewReader(`{"message": "hi"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHandler_ClearSession_NotFound(t *testing.T) {
	engine := newTestRouter(&stubUseCase{clearErr: chat.ErrSessionNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/chat/sessions/missing", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
