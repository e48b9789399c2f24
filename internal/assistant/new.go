package assistant

import (
	"time"

	"school-assistant/internal/agent"
	"school-assistant/internal/agent/leaf"
	"school-assistant/internal/agent/routing"
	"school-assistant/internal/agent/tools"
	"school-assistant/internal/backend"
	"school-assistant/pkg/gcalendar"
	"school-assistant/pkg/log"
	"school-assistant/pkg/telegram"
)

// Options carries the collaborator clients and tuning for the hierarchy.
// Calendar and Telegram are optional: when absent their agents are omitted
// and the parent menus shrink accordingly.
type Options struct {
	Backend      *backend.Client
	Calendar     *gcalendar.Client
	CalendarID   string
	Telegram     *telegram.Bot
	TelegramChat int64
	Timezone     *time.Location
	MaxPlanSteps int
}

// New assembles the assistant hierarchy and returns its root handler.
//
// The shape is three levels of routing above the leaves:
//
//	school_assistant (root)
//	├── academics
//	│   ├── assessment  -> exam_results_agent
//	│   ├── scheduling  -> attendance_agent, school_events_agent
//	│   └── activities  -> clubs_agent
//	├── communications  -> announcement_agent
//	├── finance         (coming soon)
//	└── commerce        (coming soon)
func New(l log.Logger, llm agent.Generator, opts Options) agent.Handler {
	if opts.Timezone == nil {
		opts.Timezone = time.UTC
	}

	var routerOpts []routing.Option
	if opts.MaxPlanSteps > 0 {
		routerOpts = append(routerOpts, routing.WithMaxPlanSteps(opts.MaxPlanSteps))
	}

	academics := newAcademics(l, llm, opts, routerOpts)

	rootTargets := []routing.Target{
		{Name: AcademicsName, Description: academicsDesc, Handler: academics},
	}
	if comms := newCommunications(l, llm, opts); comms != nil {
		rootTargets = append(rootTargets, routing.Target{
			Name: CommunicationsName, Description: communicationsDesc, Handler: comms,
		})
	}
	rootTargets = append(rootTargets,
		routing.Target{Name: FinanceName, Description: financeDesc},
		routing.Target{Name: CommerceName, Description: commerceDesc},
	)

	return routing.New(l, RootName, "school assistant root", llm, rootTargets, routerOpts...)
}

func newAcademics(l log.Logger, llm agent.Generator, opts Options, routerOpts []routing.Option) agent.Handler {
	assessment := newAssessment(l, llm, opts)
	scheduling := newScheduling(l, llm, opts, routerOpts)
	activities := newActivities(l, llm, opts)

	targets := []routing.Target{
		{Name: AssessmentName, Description: assessmentDesc, Handler: assessment},
		{Name: SchedulingName, Description: schedulingDesc, Handler: scheduling},
		{Name: ActivitiesName, Description: activitiesDesc, Handler: activities},
	}
	return routing.New(l, AcademicsName, academicsDesc, llm, targets, routerOpts...)
}

func newAssessment(l log.Logger, llm agent.Generator, opts Options) agent.Handler {
	registry := agent.NewToolRegistry()
	registry.Register(tools.NewLookupStudentTool(opts.Backend))
	registry.Register(tools.NewGetExamResultsTool(opts.Backend))
	return leaf.New(l, ExamAgentName, examAgentDesc, examAgentPrompt, llm, registry)
}

// newScheduling nests one more routing level: attendance questions and
// calendar questions go to different leaves.
func newScheduling(l log.Logger, llm agent.Generator, opts Options, routerOpts []routing.Option) agent.Handler {
	attendanceRegistry := agent.NewToolRegistry()
	attendanceRegistry.Register(tools.NewLookupStudentTool(opts.Backend))
	attendanceRegistry.Register(tools.NewGetAttendanceSummaryTool(opts.Backend))
	attendance := leaf.New(l, AttendanceAgentName, attendanceAgentDesc, attendanceAgentPrompt, llm, attendanceRegistry)

	targets := []routing.Target{
		{Name: AttendanceAgentName, Description: attendanceAgentDesc, Handler: attendance},
	}

	if opts.Calendar != nil {
		eventsRegistry := agent.NewToolRegistry()
		eventsRegistry.Register(tools.NewListSchoolEventsTool(opts.Calendar, opts.CalendarID, opts.Timezone))
		events := leaf.New(l, EventsAgentName, eventsAgentDesc, eventsAgentPrompt, llm, eventsRegistry)
		targets = append(targets, routing.Target{
			Name: EventsAgentName, Description: eventsAgentDesc, Handler: events,
		})
	}

	return routing.New(l, SchedulingName, schedulingDesc, llm, targets, routerOpts...)
}

func newActivities(l log.Logger, llm agent.Generator, opts Options) agent.Handler {
	registry := agent.NewToolRegistry()
	registry.Register(tools.NewListClubsTool(opts.Backend))
	return leaf.New(l, ClubsAgentName, clubsAgentDesc, clubsAgentPrompt, llm, registry)
}

// newCommunications returns nil when no announcement channel is configured;
// the root menu then omits the module entirely.
func newCommunications(l log.Logger, llm agent.Generator, opts Options) agent.Handler {
	if opts.Telegram == nil {
		return nil
	}
	registry := agent.NewToolRegistry()
	registry.Register(tools.NewSendAnnouncementTool(opts.Telegram, opts.TelegramChat))
	return leaf.New(l, AnnouncementAgentName, announcementAgentDesc, announcementAgentPrompt, llm, registry)
}
