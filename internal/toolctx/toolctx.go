package toolctx

import (
	"context"
	"errors"
	"net/http"
)

// RunContext is the request-scoped dependency bag that tools read instead of
// declaring auth and addressing in their parameter schemas. Exposing those in
// the schema would leak them into the function-calling menu the LLM sees.
type RunContext struct {
	// Token is the bearer credential for backend calls. May be empty, in
	// which case the backend client mints a service token for UserID.
	Token string

	// BackendURL overrides the backend base address for this request.
	BackendURL string

	// UserID is the acting user's identity.
	UserID string

	// Transport, when non-nil, replaces the backend client's HTTP transport.
	// Test-injection hook only.
	Transport http.RoundTripper
}

// ErrNotConfigured is returned when a tool executes outside any active
// RunContext. This is a wiring bug, fatal to the request.
var ErrNotConfigured = errors.New("toolctx: no run context configured")

type ctxKey struct{}

// With installs rc as the ambient run context for everything derived from
// the returned context. Each request derives its own chain, so concurrent
// requests never observe each other's context, and teardown is implicit:
// the value dies with the request's context.
func With(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// From retrieves the ambient run context, failing fast when none is active.
func From(ctx context.Context) (*RunContext, error) {
	rc, ok := ctx.Value(ctxKey{}).(*RunContext)
	if !ok || rc == nil {
		return nil, ErrNotConfigured
	}
	return rc, nil
}
