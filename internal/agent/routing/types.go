package routing

import (
	"school-assistant/internal/agent"
)

// Target is one routable destination in a router's menu. A nil Handler marks
// a destination that is announced to users but not built yet; routing to it
// produces a "coming soon" reply instead of an error.
type Target struct {
	Name        string
	Description string
	Handler     agent.Handler
}

// Decision is the structured routing verdict parsed from the model output.
type Decision struct {
	// Target is a menu entry name, or "self" when the router should answer
	// directly without delegating.
	Target string `json:"target"`

	// Intent refines self-answers: "greeting", "identity" or "out_of_scope".
	Intent string `json:"intent,omitempty"`

	// Steps, when present, is an ordered multi-step plan that supersedes
	// Target. Each step is delegated in sequence and the partial answers
	// are synthesized into one reply.
	Steps []Step `json:"steps,omitempty"`

	Reasoning string `json:"reasoning,omitempty"`
}

// Step is one unit of a multi-step plan.
type Step struct {
	Target string `json:"target"`
	Query  string `json:"query"`
}
