package tools

import (
	"context"
	"fmt"
	"time"

	"school-assistant/internal/agent"
	"school-assistant/pkg/gcalendar"
)

const defaultEventWindowDays = 30

// ListSchoolEventsTool lists upcoming events from the school calendar.
type ListSchoolEventsTool struct {
	calendar   *gcalendar.Client
	calendarID string
	timezone   *time.Location
}

// NewListSchoolEventsTool creates a new school events tool backed by Google Calendar.
func NewListSchoolEventsTool(calendar *gcalendar.Client, calendarID string, timezone *time.Location) agent.Tool {
	if timezone == nil {
		timezone = time.UTC
	}
	return &ListSchoolEventsTool{
		calendar:   calendar,
		calendarID: calendarID,
		timezone:   timezone,
	}
}

func (t *ListSchoolEventsTool) Name() string {
	return "list_school_events"
}

func (t *ListSchoolEventsTool) Description() string {
	return "List upcoming school events (holidays, exams, parent-teacher meetings, sports day) from the school calendar. Defaults to the next 30 days."
}

func (t *ListSchoolEventsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"days_ahead": map[string]interface{}{
				"type":        "number",
				"description": "How many days ahead to look. Defaults to 30.",
			},
			"max_results": map[string]interface{}{
				"type":        "number",
				"description": "Maximum number of events to return. Defaults to 20.",
			},
		},
	}
}

func (t *ListSchoolEventsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	daysAhead := defaultEventWindowDays
	if v, ok := params["days_ahead"].(float64); ok && v > 0 {
		daysAhead = int(v)
	}

	maxResults := int64(20)
	if v, ok := params["max_results"].(float64); ok && v > 0 {
		maxResults = int64(v)
	}

	now := time.Now().In(t.timezone)
	events, err := t.calendar.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: t.calendarID,
		TimeMin:    now,
		TimeMax:    now.AddDate(0, 0, daysAhead),
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("calendar fetch failed: %w", err)
	}

	formatted := make([]map[string]interface{}, 0, len(events))
	for _, e := range events {
		formatted = append(formatted, map[string]interface{}{
			"summary":     e.Summary,
			"description": e.Description,
			"location":    e.Location,
			"start":       e.StartTime.In(t.timezone).Format(time.RFC3339),
			"end":         e.EndTime.In(t.timezone).Format(time.RFC3339),
		})
	}

	return map[string]interface{}{
		"count":  len(formatted),
		"events": formatted,
	}, nil
}
