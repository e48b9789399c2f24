package tools

import (
	"context"
	"fmt"

	"school-assistant/internal/agent"
	"school-assistant/internal/backend"
)

// GetExamResultsTool fetches a student's exam results.
type GetExamResultsTool struct {
	client *backend.Client
}

// NewGetExamResultsTool creates a new exam results tool.
func NewGetExamResultsTool(client *backend.Client) agent.Tool {
	return &GetExamResultsTool{client: client}
}

func (t *GetExamResultsTool) Name() string {
	return "get_exam_results"
}

func (t *GetExamResultsTool) Description() string {
	return "Get exam results (marks and grades per subject) for a student. Requires the student id from lookup_student."
}

func (t *GetExamResultsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"student_id": map[string]interface{}{
				"type":        "string",
				"description": "Student id returned by lookup_student",
			},
			"term": map[string]interface{}{
				"type":        "string",
				"description": "Optional exam term filter, e.g. 'mid-term', 'final'",
			},
		},
		"required": []string{"student_id"},
	}
}

func (t *GetExamResultsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	studentID, ok := params["student_id"].(string)
	if !ok || studentID == "" {
		return nil, fmt.Errorf("student_id parameter is required")
	}

	term, _ := params["term"].(string)

	results, err := t.client.ListExamResults(ctx, studentID, term)
	if err != nil {
		return nil, fmt.Errorf("exam results fetch failed: %w", err)
	}

	formatted := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		formatted = append(formatted, map[string]interface{}{
			"exam":           r.Exam,
			"subject":        r.Subject,
			"marks_obtained": r.MarksObtained,
			"max_marks":      r.MaxMarks,
			"grade":          r.Grade,
		})
	}

	return map[string]interface{}{
		"count":   len(formatted),
		"results": formatted,
	}, nil
}
