package layoutkit

import (
	"errors"
	"fmt"
)

var (
	// ErrNotOnUIThread is returned by apply-phase operations called without
	// a live UIContext.
	ErrNotOnUIThread = errors.New("layoutkit: not on the UI loop")

	// ErrViewTypeMismatch is returned by Configure when handed a view of a
	// different concrete type than the layout declares.
	ErrViewTypeMismatch = errors.New("layoutkit: view type mismatch")

	// ErrNilView is recorded when a builder or view class produces no view.
	ErrNilView = errors.New("layoutkit: builder returned no view")

	// ErrLoopStopped is returned when work is posted to a stopped MainLoop.
	ErrLoopStopped = errors.New("layoutkit: main loop stopped")

	// ErrLoopRunning is returned by Run when the loop is already running.
	ErrLoopRunning = errors.New("layoutkit: main loop already running")

	// ErrQueueFull is returned when the MainLoop queue cannot accept more work.
	ErrQueueFull = errors.New("layoutkit: main loop queue full")
)

// Phase names the apply step a node failed in.
type Phase string

const (
	PhaseBuild     Phase = "build"
	PhaseConfigure Phase = "configure"
	PhaseAttach    Phase = "attach"
	PhaseTeardown  Phase = "teardown"
)

// NodeError describes a failure isolated to a single node during apply.
type NodeError struct {
	Phase    Phase
	ReuseID  string
	ViewType string
	Path     []int
	Err      error
}

func (e *NodeError) Error() string {
	id := e.ReuseID
	if id == "" {
		id = "-"
	}
	return fmt.Sprintf("%s %s (reuse id %s) at %v: %v", e.Phase, e.ViewType, id, e.Path, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// panicError wraps a recovered panic value.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
