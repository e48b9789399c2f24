package assistant

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"school-assistant/internal/backend"
	"school-assistant/pkg/llmprovider"
	"school-assistant/pkg/log"
)

// routeRecorder answers every routing prompt with a fixed decision and
// records the prompts it saw.
type routeRecorder struct {
	decision map[string]interface{}
	prompts  []string
}

func (g *routeRecorder) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	prompt := req.Messages[len(req.Messages)-1].Parts[0].Text
	g.prompts = append(g.prompts, prompt)
	raw, _ := json.Marshal(g.decision)
	return &llmprovider.Response{
		Content: llmprovider.Message{
			Role:  "assistant",
			Parts: []llmprovider.Part{{Text: string(raw)}},
		},
	}, nil
}

func TestNew_RootMenu(t *testing.T) {
	gen := &routeRecorder{decision: map[string]interface{}{"target": "self", "intent": "greeting"}}
	root := New(log.NewNop(), gen, Options{
		Backend: backend.New(log.NewNop(), backend.Config{}),
	})

	if root.Name() != RootName {
		t.Errorf("unexpected root name: %q", root.Name())
	}

	if _, err := root.Handle(context.Background(), "hello", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := gen.prompts[0]
	for _, name := range []string{AcademicsName, FinanceName, CommerceName} {
		if !strings.Contains(prompt, "- "+name+":") {
			t.Errorf("root menu missing %s:\n%s", name, prompt)
		}
	}
	// No announcement channel configured, so communications is absent.
	if strings.Contains(prompt, "- "+CommunicationsName+":") {
		t.Errorf("communications should be omitted without a Telegram bot:\n%s", prompt)
	}
}

func TestNew_UnbuiltModulesAnswerComingSoon(t *testing.T) {
	gen := &routeRecorder{decision: map[string]interface{}{"target": FinanceName}}
	root := New(log.NewNop(), gen, Options{
		Backend: backend.New(log.NewNop(), backend.Config{}),
	})

	result, err := root.Handle(context.Background(), "pending fees for Rohan?", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Text, FinanceName) || !strings.Contains(result.Text, "coming soon") {
		t.Errorf("expected coming-soon reply, got %q", result.Text)
	}
	if result.AgentID != RootName {
		t.Errorf("unexpected agent id: %q", result.AgentID)
	}
}

func TestNew_NestedRoutingReachesLeaf(t *testing.T) {
	// One scripted response per routing level, then the leaf's final text.
	script := &scriptedRouting{responses: []string{
		`{"target": "academics"}`,
		`{"target": "assessment"}`,
		`Rohan scored 92 in Mathematics.`,
	}}

	root := New(log.NewNop(), script, Options{
		Backend: backend.New(log.NewNop(), backend.Config{}),
	})

	result, err := root.Handle(context.Background(), "marks for Rohan?", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AgentID != ExamAgentName {
		t.Errorf("expected the exam leaf to author the reply, got %q", result.AgentID)
	}
	if result.Text != "Rohan scored 92 in Mathematics." {
		t.Errorf("unexpected reply: %q", result.Text)
	}
}

type scriptedRouting struct {
	responses []string
}

func (g *scriptedRouting) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	text := g.responses[0]
	if len(g.responses) > 1 {
		g.responses = g.responses[1:]
	}
	return &llmprovider.Response{
		Content: llmprovider.Message{
			Role:  "assistant",
			Parts: []llmprovider.Part{{Text: text}},
		},
	}, nil
}
