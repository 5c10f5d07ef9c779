package actor

import (
	"errors"
	"fmt"
)

// Sentinel errors for malformed-ABI-use and missing-target cases. None of
// these indicate a runtime bug; callers are expected to check for them
// with errors.Is.
var (
	// ErrUnknownProcess is returned when an operation names a PID that has
	// no entry in the process table (exited PCBs stay there as stubs).
	ErrUnknownProcess = errors.New("actor: unknown process")

	// ErrProcessExited is returned by operations against a process that is
	// in the terminal Exited state (its PCB stub is still present for
	// lookup-then-fail).
	ErrProcessExited = errors.New("actor: process has exited")

	// ErrNameTaken is returned by Register when the name is already bound.
	ErrNameTaken = errors.New("actor: name already registered")

	// ErrInvalidPriority is returned when a priority outside
	// {High, Normal, Low} is supplied at the ABI boundary.
	ErrInvalidPriority = errors.New("actor: invalid priority")

	// ErrSchedulerStopped is returned by operations attempted after
	// shutdown has completed.
	ErrSchedulerStopped = errors.New("actor: scheduler stopped")

	// ErrSchedulerRunning is returned by Init when called again on an
	// already-initialized runtime (the C ABI's rt_init_actor is meant to
	// be idempotent, not re-entrant with different parameters).
	ErrSchedulerRunning = errors.New("actor: scheduler already initialized")
)

// HeapExhaustedError is raised (via panic, not a returned error - see
// heap.go) when an actor's address space is genuinely exhausted. It
// implements error so it can still be inspected by a recover() in test
// code or a host-side panic handler.
type HeapExhaustedError struct {
	Requested int
}

func (e *HeapExhaustedError) Error() string {
	return fmt.Sprintf("actor: heap exhausted allocating %d bytes", e.Requested)
}

// YieldOutsideCoroutineError is raised when Yield is called with no
// coroutine context installed on the calling goroutine - the "invalid
// yield" case, a programmer error in the host code generator that must
// fail loudly rather than silently no-op.
type YieldOutsideCoroutineError struct{}

func (e *YieldOutsideCoroutineError) Error() string {
	return "actor: yield_current called outside a coroutine"
}

// LinkError wraps a failure discovered while linking or unlinking two
// processes, retaining which side of the pair could not be resolved.
type LinkError struct {
	PID   ProcessID
	Cause error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("actor: link %d: %s", e.PID, e.Cause)
}

func (e *LinkError) Unwrap() error {
	return e.Cause
}
