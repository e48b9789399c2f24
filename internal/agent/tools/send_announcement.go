package tools

import (
	"context"
	"fmt"

	"school-assistant/internal/agent"
	"school-assistant/pkg/telegram"
)

// SendAnnouncementTool broadcasts a message to the school's Telegram channel.
type SendAnnouncementTool struct {
	bot    *telegram.Bot
	chatID int64
}

// NewSendAnnouncementTool creates a new announcement tool.
func NewSendAnnouncementTool(bot *telegram.Bot, chatID int64) agent.Tool {
	return &SendAnnouncementTool{bot: bot, chatID: chatID}
}

func (t *SendAnnouncementTool) Name() string {
	return "send_announcement"
}

func (t *SendAnnouncementTool) Description() string {
	return "Broadcast an announcement to the school's notification channel. Use only when the user explicitly asks to send or publish an announcement."
}

func (t *SendAnnouncementTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "The announcement text to broadcast",
			},
		},
		"required": []string{"text"},
	}
}

func (t *SendAnnouncementTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	text, ok := params["text"].(string)
	if !ok || text == "" {
		return nil, fmt.Errorf("text parameter is required")
	}

	if err := t.bot.SendMessage(t.chatID, text); err != nil {
		return nil, fmt.Errorf("announcement broadcast failed: %w", err)
	}

	return map[string]interface{}{
		"status":  "sent",
		"chat_id": t.chatID,
	}, nil
}
