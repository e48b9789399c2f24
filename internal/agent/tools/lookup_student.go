package tools

import (
	"context"
	"fmt"

	"school-assistant/internal/agent"
	"school-assistant/internal/backend"
)

// LookupStudentTool resolves a student name to a directory record.
type LookupStudentTool struct {
	client *backend.Client
}

// NewLookupStudentTool creates a new student lookup tool.
func NewLookupStudentTool(client *backend.Client) agent.Tool {
	return &LookupStudentTool{client: client}
}

func (t *LookupStudentTool) Name() string {
	return "lookup_student"
}

func (t *LookupStudentTool) Description() string {
	return "Look up a student in the school directory by name. Returns the student id, class, section and guardian. Always call this first when a query names a student."
}

func (t *LookupStudentTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Full or partial student name, e.g. 'Rohan'",
			},
		},
		"required": []string{"name"},
	}
}

func (t *LookupStudentTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("name parameter is required")
	}

	student, err := t.client.GetStudent(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("student lookup failed: %w", err)
	}

	return map[string]interface{}{
		"id":            student.ID,
		"name":          student.Name,
		"class":         student.Class,
		"section":       student.Section,
		"roll_number":   student.RollNumber,
		"guardian_name": student.GuardianName,
	}, nil
}
