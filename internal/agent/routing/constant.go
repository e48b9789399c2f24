package routing

// SelfTarget is the reserved menu name for answering without delegation.
const SelfTarget = "self"

// Self-answer intents.
const (
	IntentGreeting   = "greeting"
	IntentIdentity   = "identity"
	IntentOutOfScope = "out_of_scope"
)

// Fixed persona replies. These are deliberately not model-generated so the
// assistant introduces itself and refuses consistently.
const (
	GreetingReply = "Hello! I'm the school assistant. I can help you with exam results, attendance, the school calendar, clubs and announcements. What would you like to know?"

	IdentityReply = "I'm the school assistant, a virtual helper for students, parents and staff. I can look up exam results and attendance, list upcoming school events and clubs, and broadcast announcements."

	OutOfScopeReply = "I'm sorry, that's outside what I can help with. I handle school matters: exam results, attendance, the school calendar, clubs and announcements."
)

// ComingSoonTemplate announces a declared-but-unbuilt capability. The verb
// tense matters: the capability exists in the menu so users discover it, but
// nothing is wired behind it yet.
const ComingSoonTemplate = "The %s module is coming soon. I can't help with that yet, but I can already answer questions about exam results, attendance, school events, clubs and announcements."

// Routing configuration.
const (
	routeTemperature     = 0.1
	synthesisTemperature = 0.3
	DefaultMaxPlanSteps  = 4
)

const routePromptTemplate = `You are the routing brain of a school assistant. Decide which destination should handle the user's message.

Destinations:
%s- self: answer directly. Use for greetings (intent "greeting"), questions about who you are (intent "identity"), and anything unrelated to school matters (intent "out_of_scope").

User message: %q

If the message needs several destinations (for example exam results AND attendance), return a "steps" plan instead of a single target. Never repeat a destination within a plan.

Return JSON only:
{
  "target": "<destination name or self>",
  "intent": "greeting|identity|out_of_scope",
  "steps": [{"target": "<destination>", "query": "<sub-question>"}],
  "reasoning": "<one sentence>"
}`

const historyPromptPrefix = "Recent conversation:\n"

const synthesisPromptTemplate = `You are a school assistant. The user asked: %q

Partial answers were gathered from specialist agents:

%s
Combine them into one coherent, friendly reply. Do not mention the agents or the gathering process. Answer in the order the questions were asked.`
