package leaf

import (
	"context"
	"fmt"

	"school-assistant/internal/agent"
	"school-assistant/internal/session"
	"school-assistant/pkg/llmprovider"
	"school-assistant/pkg/log"
)

// Agent is a terminal worker in the routing hierarchy. It owns a small set
// of tools for one narrow concern and answers queries with a bounded
// reason-act loop: the model either calls a tool or produces the final text.
type Agent struct {
	l            log.Logger
	name         string
	description  string
	llm          agent.Generator
	registry     *agent.ToolRegistry
	systemPrompt string
	maxSteps     int
}

// Option customizes an Agent.
type Option func(*Agent)

// WithMaxSteps overrides the tool-call budget per query.
func WithMaxSteps(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxSteps = n
		}
	}
}

// New creates a leaf agent.
func New(l log.Logger, name, description, systemPrompt string, llm agent.Generator, registry *agent.ToolRegistry, opts ...Option) *Agent {
	a := &Agent{
		l:            l,
		name:         name,
		description:  description,
		llm:          llm,
		registry:     registry,
		systemPrompt: systemPrompt,
		maxSteps:     MaxSteps,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Agent) Name() string {
	return a.name
}

// Description summarizes the agent's scope for routing menus.
func (a *Agent) Description() string {
	return a.description
}

// Handle answers the query, calling tools as needed. Tool failures are fed
// back to the model once; if the model cannot recover, the error surfaces
// so the caller can degrade uniformly.
func (a *Agent) Handle(ctx context.Context, query string, history []session.Message) (agent.Result, error) {
	messages := buildMessages(history, query)
	tools := a.registry.ToFunctionDefinitions()

	for step := 0; step < a.maxSteps; step++ {
		resp, err := a.llm.GenerateContent(ctx, &llmprovider.Request{
			SystemInstruction: &llmprovider.Message{
				Role:  "system",
				Parts: []llmprovider.Part{{Text: a.systemPrompt}},
			},
			Messages:    messages,
			Tools:       tools,
			Temperature: defaultTemperature,
		})
		if err != nil {
			return agent.Result{}, fmt.Errorf("%s: generation failed: %w", a.name, err)
		}

		call := firstFunctionCall(resp)
		if call == nil {
			text := firstText(resp)
			if text == "" {
				return agent.Result{}, fmt.Errorf("%s: model returned empty response", a.name)
			}
			return agent.Result{Text: text, AgentID: a.name}, nil
		}

		a.l.Infof(ctx, "agent %s step %d: calling tool %s", a.name, step+1, call.Name)

		output, err := a.executeTool(ctx, call)
		if err != nil {
			a.l.Warnf(ctx, "agent %s: tool %s failed: %v", a.name, call.Name, err)
			output = map[string]interface{}{"error": err.Error()}
		}

		messages = append(messages,
			llmprovider.Message{
				Role:  "assistant",
				Parts: []llmprovider.Part{{FunctionCall: call}},
			},
			llmprovider.Message{
				Role: "user",
				Parts: []llmprovider.Part{{FunctionResponse: &llmprovider.FunctionResponse{
					Name:     call.Name,
					Response: output,
				}}},
			},
		)
	}

	a.l.Warnf(ctx, "agent %s: step budget exhausted for query %q", a.name, query)
	return agent.Result{Text: exhaustedReply, AgentID: a.name}, nil
}

func (a *Agent) executeTool(ctx context.Context, call *llmprovider.FunctionCall) (interface{}, error) {
	tool, ok := a.registry.Get(call.Name)
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", call.Name)
	}
	return tool.Execute(ctx, call.Args)
}

// buildMessages converts session history into provider messages and appends
// the current query as the final user turn.
func buildMessages(history []session.Message, query string) []llmprovider.Message {
	messages := make([]llmprovider.Message, 0, len(history)+1)
	for _, m := range history {
		role := "user"
		if m.Role == session.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, llmprovider.Message{
			Role:  role,
			Parts: []llmprovider.Part{{Text: m.Content}},
		})
	}
	messages = append(messages, llmprovider.Message{
		Role:  "user",
		Parts: []llmprovider.Part{{Text: query}},
	})
	return messages
}

func firstFunctionCall(resp *llmprovider.Response) *llmprovider.FunctionCall {
	for _, part := range resp.Content.Parts {
		if part.FunctionCall != nil {
			return part.FunctionCall
		}
	}
	return nil
}

func firstText(resp *llmprovider.Response) string {
	for _, part := range resp.Content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}
	return ""
}
