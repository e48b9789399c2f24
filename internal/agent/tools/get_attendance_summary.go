package tools

import (
	"context"
	"fmt"

	"school-assistant/internal/agent"
	"school-assistant/internal/backend"
)

// GetAttendanceSummaryTool fetches a student's attendance aggregate.
type GetAttendanceSummaryTool struct {
	client *backend.Client
}

// NewGetAttendanceSummaryTool creates a new attendance summary tool.
func NewGetAttendanceSummaryTool(client *backend.Client) agent.Tool {
	return &GetAttendanceSummaryTool{client: client}
}

func (t *GetAttendanceSummaryTool) Name() string {
	return "get_attendance_summary"
}

func (t *GetAttendanceSummaryTool) Description() string {
	return "Get a student's attendance summary (days present, absent, late, percentage) for a date range. Requires the student id from lookup_student."
}

func (t *GetAttendanceSummaryTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"student_id": map[string]interface{}{
				"type":        "string",
				"description": "Student id returned by lookup_student",
			},
			"from_date": map[string]interface{}{
				"type":        "string",
				"description": "Range start, format YYYY-MM-DD. Omit for current term.",
			},
			"to_date": map[string]interface{}{
				"type":        "string",
				"description": "Range end, format YYYY-MM-DD. Omit for current term.",
			},
		},
		"required": []string{"student_id"},
	}
}

func (t *GetAttendanceSummaryTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	studentID, ok := params["student_id"].(string)
	if !ok || studentID == "" {
		return nil, fmt.Errorf("student_id parameter is required")
	}

	from, _ := params["from_date"].(string)
	to, _ := params["to_date"].(string)

	summary, err := t.client.GetAttendanceSummary(ctx, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("attendance fetch failed: %w", err)
	}

	return map[string]interface{}{
		"student_id": summary.StudentID,
		"from_date":  summary.FromDate,
		"to_date":    summary.ToDate,
		"total_days": summary.TotalDays,
		"present":    summary.Present,
		"absent":     summary.Absent,
		"late":       summary.Late,
		"percentage": summary.Percentage,
	}, nil
}
