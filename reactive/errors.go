package reactive

import "errors"

var (
	// ErrCyclicDependency is reported when a write would rerun an effect that
	// is already running further up the call stack.
	ErrCyclicDependency = errors.New("reactive: cyclic dependency")

	// ErrMaxDepthExceeded is reported when nested triggers go deeper than the
	// system's configured maximum.
	ErrMaxDepthExceeded = errors.New("reactive: max trigger depth exceeded")

	ErrNotStruct     = errors.New("reactive: target is not a pointer to a struct")
	ErrUnknownField  = errors.New("reactive: unknown field")
	ErrNotAssignable = errors.New("reactive: value not assignable to field")
)
