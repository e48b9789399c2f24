package http

import (
	"school-assistant/internal/chat"
	"school-assistant/pkg/response"
)

// --- Request DTOs ---

type sendReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required,min=1,max=4000"`
}

func (r sendReq) validate() error { return nil }

func (r sendReq) toInput() chat.SendMessageInput {
	return chat.SendMessageInput{
		SessionID: r.SessionID,
		Message:   r.Message,
	}
}

// --- Response DTOs ---

type newSessionResp struct {
	SessionID string `json:"session_id"`
}

func newNewSessionResp(out chat.NewSessionOutput) newSessionResp {
	return newSessionResp{SessionID: out.SessionID}
}

type sendResp struct {
	SessionID string            `json:"session_id"`
	Reply     string            `json:"reply"`
	AgentID   string            `json:"agent_id"`
	Timestamp response.DateTime `json:"timestamp"`
}

func newSendResp(out chat.SendMessageOutput) sendResp {
	return sendResp{
		SessionID: out.SessionID,
		Reply:     out.Reply,
		AgentID:   out.AgentID,
		Timestamp: response.DateTime(out.Timestamp),
	}
}
