package routing

import "errors"

var (
	// ErrUnknownTarget means the model chose a destination that is not in
	// this router's menu. This is a routing bug, not a user mistake, so it
	// surfaces instead of being silently retried.
	ErrUnknownTarget = errors.New("routing: model chose a target outside the menu")

	// ErrInvalidPlan means a multi-step plan violated plan constraints
	// (too many steps, or the same target repeated).
	ErrInvalidPlan = errors.New("routing: model produced an invalid multi-step plan")
)
