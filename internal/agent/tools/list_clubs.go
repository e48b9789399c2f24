package tools

import (
	"context"
	"fmt"

	"school-assistant/internal/agent"
	"school-assistant/internal/backend"
)

// ListClubsTool lists extracurricular clubs.
type ListClubsTool struct {
	client *backend.Client
}

// NewListClubsTool creates a new club listing tool.
func NewListClubsTool(client *backend.Client) agent.Tool {
	return &ListClubsTool{client: client}
}

func (t *ListClubsTool) Name() string {
	return "list_clubs"
}

func (t *ListClubsTool) Description() string {
	return "List the school's extracurricular clubs and activities with their meeting days and supervising teachers."
}

func (t *ListClubsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *ListClubsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	clubs, err := t.client.ListClubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("club listing failed: %w", err)
	}

	formatted := make([]map[string]interface{}, 0, len(clubs))
	for _, c := range clubs {
		formatted = append(formatted, map[string]interface{}{
			"id":           c.ID,
			"name":         c.Name,
			"description":  c.Description,
			"meeting_day":  c.MeetingDay,
			"teacher_name": c.TeacherName,
		})
	}

	return map[string]interface{}{
		"count": len(formatted),
		"clubs": formatted,
	}, nil
}
