package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"school-assistant/internal/agent"
	"school-assistant/internal/session"
	"school-assistant/pkg/llmprovider"
	"school-assistant/pkg/log"
)

// Router dispatches queries across a menu of targets. Targets may themselves
// be routers, which is how the assistant hierarchy nests: the root routes to
// module routers, module routers route to leaf agents.
type Router struct {
	l            log.Logger
	name         string
	description  string
	llm          agent.Generator
	targets      []Target
	byName       map[string]Target
	maxPlanSteps int
}

// Option customizes a Router.
type Option func(*Router)

// WithMaxPlanSteps overrides the multi-step plan budget.
func WithMaxPlanSteps(n int) Option {
	return func(r *Router) {
		if n > 0 {
			r.maxPlanSteps = n
		}
	}
}

// New creates a router over the given targets. Menu order is preserved in
// the routing prompt.
func New(l log.Logger, name, description string, llm agent.Generator, targets []Target, opts ...Option) *Router {
	byName := make(map[string]Target, len(targets))
	for _, t := range targets {
		byName[t.Name] = t
	}

	r := &Router{
		l:            l,
		name:         name,
		description:  description,
		llm:          llm,
		targets:      targets,
		byName:       byName,
		maxPlanSteps: DefaultMaxPlanSteps,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) Name() string {
	return r.name
}

// Description summarizes the router's scope for parent routing menus.
func (r *Router) Description() string {
	return r.description
}

// Handle routes the query: self-answer, single delegation, or a multi-step
// plan executed in order and synthesized into one reply.
func (r *Router) Handle(ctx context.Context, query string, history []session.Message) (agent.Result, error) {
	decision, err := r.decide(ctx, query, history)
	if err != nil {
		return agent.Result{}, err
	}

	r.l.Infof(ctx, "router %s: target=%s intent=%s steps=%d", r.name, decision.Target, decision.Intent, len(decision.Steps))

	if len(decision.Steps) > 1 {
		return r.executePlan(ctx, query, history, decision.Steps)
	}
	if len(decision.Steps) == 1 {
		// A one-step plan is just a delegation with a refined query.
		decision.Target = decision.Steps[0].Target
		query = decision.Steps[0].Query
	}

	if decision.Target == SelfTarget || decision.Target == "" {
		return agent.Result{Text: r.selfReply(decision.Intent), AgentID: r.name}, nil
	}

	target, ok := r.byName[decision.Target]
	if !ok {
		return agent.Result{}, fmt.Errorf("%w: router %s chose %q", ErrUnknownTarget, r.name, decision.Target)
	}
	if target.Handler == nil {
		return agent.Result{Text: fmt.Sprintf(ComingSoonTemplate, target.Name), AgentID: r.name}, nil
	}

	return target.Handler.Handle(ctx, query, history)
}

// decide asks the model to pick a destination and parses its JSON verdict.
// Malformed output degrades to an out-of-scope self-answer rather than an
// error: a confused model should never take the conversation down.
func (r *Router) decide(ctx context.Context, query string, history []session.Message) (Decision, error) {
	prompt := r.buildPrompt(query, history)

	resp, err := r.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: prompt}}},
		},
		Temperature: routeTemperature,
	})
	if err != nil {
		return Decision{}, fmt.Errorf("router %s: decision failed: %w", r.name, err)
	}

	text := strings.TrimSpace(firstText(resp))
	text = stripCodeFence(text)

	var decision Decision
	if err := json.Unmarshal([]byte(text), &decision); err != nil {
		r.l.Warnf(ctx, "router %s: unparsable decision %q: %v", r.name, text, err)
		return Decision{Target: SelfTarget, Intent: IntentOutOfScope, Reasoning: "fallback after parse failure"}, nil
	}
	return decision, nil
}

func (r *Router) buildPrompt(query string, history []session.Message) string {
	var menu strings.Builder
	for _, t := range r.targets {
		fmt.Fprintf(&menu, "- %s: %s\n", t.Name, t.Description)
	}

	prompt := fmt.Sprintf(routePromptTemplate, menu.String(), query)

	if len(history) == 0 {
		return prompt
	}
	var b strings.Builder
	b.WriteString(historyPromptPrefix)
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	b.WriteString("\n")
	b.WriteString(prompt)
	return b.String()
}

func (r *Router) selfReply(intent string) string {
	switch intent {
	case IntentGreeting:
		return GreetingReply
	case IntentIdentity:
		return IdentityReply
	default:
		return OutOfScopeReply
	}
}

// executePlan runs plan steps in order, then synthesizes the partial answers
// into one reply authored by this router.
func (r *Router) executePlan(ctx context.Context, query string, history []session.Message, steps []Step) (agent.Result, error) {
	if len(steps) > r.maxPlanSteps {
		return agent.Result{}, fmt.Errorf("%w: %d steps exceeds budget of %d", ErrInvalidPlan, len(steps), r.maxPlanSteps)
	}

	seen := make(map[string]bool, len(steps))
	for _, step := range steps {
		if step.Target == SelfTarget {
			return agent.Result{}, fmt.Errorf("%w: self is not a plan destination", ErrInvalidPlan)
		}
		if _, ok := r.byName[step.Target]; !ok {
			return agent.Result{}, fmt.Errorf("%w: router %s planned %q", ErrUnknownTarget, r.name, step.Target)
		}
		if seen[step.Target] {
			return agent.Result{}, fmt.Errorf("%w: target %q repeated", ErrInvalidPlan, step.Target)
		}
		seen[step.Target] = true
	}

	partials := make([]string, 0, len(steps))
	for i, step := range steps {
		target := r.byName[step.Target]

		var text string
		if target.Handler == nil {
			text = fmt.Sprintf(ComingSoonTemplate, target.Name)
		} else {
			result, err := target.Handler.Handle(ctx, step.Query, history)
			if err != nil {
				return agent.Result{}, fmt.Errorf("router %s: plan step %d (%s) failed: %w", r.name, i+1, step.Target, err)
			}
			text = result.Text
		}
		partials = append(partials, fmt.Sprintf("%d. %q -> %s", i+1, step.Query, text))
	}

	return r.synthesize(ctx, query, partials)
}

func (r *Router) synthesize(ctx context.Context, query string, partials []string) (agent.Result, error) {
	prompt := fmt.Sprintf(synthesisPromptTemplate, query, strings.Join(partials, "\n")+"\n")

	resp, err := r.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: prompt}}},
		},
		Temperature: synthesisTemperature,
	})
	if err != nil {
		return agent.Result{}, fmt.Errorf("router %s: synthesis failed: %w", r.name, err)
	}

	text := strings.TrimSpace(firstText(resp))
	if text == "" {
		// Degrade to stitched partials rather than losing the work.
		text = strings.Join(partials, "\n")
	}
	return agent.Result{Text: text, AgentID: r.name}, nil
}

func stripCodeFence(text string) string {
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}
	return text
}

func firstText(resp *llmprovider.Response) string {
	for _, part := range resp.Content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}
	return ""
}
