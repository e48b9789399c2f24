package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"

	"school-assistant/pkg/log"
)

type fakeProvider struct {
	name     string
	calls    int
	failures int // fail the first N calls
	err      error
	resp     *Response
}

func (p *fakeProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	p.calls++
	if p.calls <= p.failures {
		if p.err != nil {
			return nil, p.err
		}
		return nil, errors.New("transient failure")
	}
	if p.resp != nil {
		return p.resp, nil
	}
	return &Response{
		Content:      Message{Role: "assistant", Parts: []Part{{Text: "ok from " + p.name}}},
		ProviderName: p.name,
		Usage:        &Usage{},
	}, nil
}

func (p *fakeProvider) Name() string  { return p.name }
func (p *fakeProvider) Model() string { return p.name + "-model" }

func newTestConfig() *Config {
	return &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      time.Millisecond,
		MaxTotalTimeout: time.Second,
	}
}

func TestManager_GenerateContent(t *testing.T) {
	ctx := context.Background()
	req := &Request{Messages: []Message{{Role: "user", Parts: []Part{{Text: "hi"}}}}}

	t.Run("first provider succeeds", func(t *testing.T) {
		primary := &fakeProvider{name: "primary"}
		secondary := &fakeProvider{name: "secondary"}
		m := NewManager([]Provider{primary, secondary}, newTestConfig(), log.NewNop())

		resp, err := m.GenerateContent(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Content.Parts[0].Text != "ok from primary" {
			t.Errorf("unexpected response: %s", resp.Content.Parts[0].Text)
		}
		if secondary.calls != 0 {
			t.Errorf("secondary should not be called, got %d calls", secondary.calls)
		}
	})

	t.Run("retry within a provider", func(t *testing.T) {
		primary := &fakeProvider{name: "primary", failures: 1}
		m := NewManager([]Provider{primary}, newTestConfig(), log.NewNop())

		_, err := m.GenerateContent(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if primary.calls != 2 {
			t.Errorf("expected 2 calls (1 failure + 1 success), got %d", primary.calls)
		}
	})

	t.Run("fallback to second provider", func(t *testing.T) {
		primary := &fakeProvider{name: "primary", failures: 10}
		secondary := &fakeProvider{name: "secondary"}
		m := NewManager([]Provider{primary, secondary}, newTestConfig(), log.NewNop())

		resp, err := m.GenerateContent(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Content.Parts[0].Text != "ok from secondary" {
			t.Errorf("expected secondary response, got %s", resp.Content.Parts[0].Text)
		}
	})

	t.Run("all providers fail", func(t *testing.T) {
		primary := &fakeProvider{name: "primary", failures: 10}
		secondary := &fakeProvider{name: "secondary", failures: 10}
		m := NewManager([]Provider{primary, secondary}, newTestConfig(), log.NewNop())

		_, err := m.GenerateContent(ctx, req)
		if !errors.Is(err, ErrAllProvidersFailed) {
			t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
		}
	})

	t.Run("fallback disabled stops at first provider", func(t *testing.T) {
		primary := &fakeProvider{name: "primary", failures: 10}
		secondary := &fakeProvider{name: "secondary"}
		cfg := newTestConfig()
		cfg.FallbackEnabled = false
		m := NewManager([]Provider{primary, secondary}, cfg, log.NewNop())

		_, err := m.GenerateContent(ctx, req)
		if err == nil {
			t.Fatal("expected error with fallback disabled")
		}
		if secondary.calls != 0 {
			t.Errorf("secondary should not be called, got %d calls", secondary.calls)
		}
	})

	t.Run("no providers", func(t *testing.T) {
		m := NewManager(nil, newTestConfig(), log.NewNop())
		_, err := m.GenerateContent(ctx, req)
		if !errors.Is(err, ErrNoProvidersConfigured) {
			t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
		}
	})
}
