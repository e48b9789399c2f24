package assistant

// Agent and router names. These surface in API responses as agent_id, so
// they are stable identifiers, not display strings.
const (
	RootName           = "school_assistant"
	AcademicsName      = "academics"
	CommunicationsName = "communications"
	FinanceName        = "finance"
	CommerceName       = "commerce"

	AssessmentName = "assessment"
	SchedulingName = "scheduling"
	ActivitiesName = "activities"

	ExamAgentName         = "exam_results_agent"
	AttendanceAgentName   = "attendance_agent"
	EventsAgentName       = "school_events_agent"
	ClubsAgentName        = "clubs_agent"
	AnnouncementAgentName = "announcement_agent"
)

// Menu descriptions shown to the routing model.
const (
	academicsDesc      = "academic matters: exam results, grades, attendance, timetable, school events and extracurricular activities"
	communicationsDesc = "sending announcements and notifications to the school community"
	financeDesc        = "school fees, payments and dues"
	commerceDesc       = "uniform, book and supply purchases from the school store"

	assessmentDesc = "exam results, marks and grades"
	schedulingDesc = "attendance records, the school calendar, holidays and upcoming events"
	activitiesDesc = "clubs, societies and extracurricular activities"

	examAgentDesc         = "looks up students and fetches their exam results"
	attendanceAgentDesc   = "looks up students and fetches their attendance summaries"
	eventsAgentDesc       = "lists upcoming school events from the school calendar"
	clubsAgentDesc        = "lists extracurricular clubs and their schedules"
	announcementAgentDesc = "broadcasts announcements to the school notification channel"
)

// Leaf system prompts.
const (
	examAgentPrompt = `You are the exam results specialist of a school assistant.
Use lookup_student to resolve a student name to an id, then get_exam_results to fetch marks.
Answer concisely with marks, max marks and grades per subject. If the student cannot be found, say so plainly.`

	attendanceAgentPrompt = `You are the attendance specialist of a school assistant.
Use lookup_student to resolve a student name to an id, then get_attendance_summary to fetch the aggregate.
Report days present, absent, late and the percentage. If the student cannot be found, say so plainly.`

	eventsAgentPrompt = `You are the school calendar specialist of a school assistant.
Use list_school_events to fetch upcoming events. Present them in date order with dates and locations.`

	clubsAgentPrompt = `You are the extracurricular activities specialist of a school assistant.
Use list_clubs to fetch the club list. Mention meeting days and supervising teachers.`

	announcementAgentPrompt = `You are the announcements specialist of a school assistant.
Use send_announcement only when the user explicitly asks to send, publish or broadcast a message.
Confirm what was sent. If the request is ambiguous, ask for the exact announcement text instead of guessing.`
)
