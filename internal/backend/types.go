package backend

import (
	"encoding/json"
	"time"
)

// Config for the school-management backend client.
type Config struct {
	BaseURL       string
	TokenURL      string
	ClientID      string
	ClientSecret  string
	RatePerSecond float64
	RateBurst     int
	TokenCacheTTL time.Duration
}

// Student is a directory record.
type Student struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Class        string `json:"class"`
	Section      string `json:"section"`
	RollNumber   int    `json:"roll_number"`
	GuardianName string `json:"guardian_name"`
}

// ExamResult is one subject result in one exam.
type ExamResult struct {
	Exam          string  `json:"exam"`
	Subject       string  `json:"subject"`
	MarksObtained float64 `json:"marks_obtained"`
	MaxMarks      float64 `json:"max_marks"`
	Grade         string  `json:"grade"`
}

// AttendanceSummary aggregates a student's attendance over a date range.
type AttendanceSummary struct {
	StudentID  string  `json:"student_id"`
	FromDate   string  `json:"from_date"`
	ToDate     string  `json:"to_date"`
	TotalDays  int     `json:"total_days"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	Percentage float64 `json:"percentage"`
}

// Club is an extracurricular club or activity.
type Club struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MeetingDay  string `json:"meeting_day"`
	TeacherName string `json:"teacher_name"`
}

// envelope is the backend's uniform response body.
type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}
