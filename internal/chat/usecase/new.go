package usecase

import (
	"school-assistant/internal/agent"
	"school-assistant/internal/session"
	pkgLog "school-assistant/pkg/log"
)

type implUseCase struct {
	l          pkgLog.Logger
	root       agent.Handler
	sessions   session.Store
	backendURL string
}

// New creates a new chat UseCase instance.
func New(l pkgLog.Logger, root agent.Handler, sessions session.Store, backendURL string) *implUseCase {
	return &implUseCase{
		l:          l,
		root:       root,
		sessions:   sessions,
		backendURL: backendURL,
	}
}
