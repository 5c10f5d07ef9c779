package actor

import "sync/atomic"

// ProcessState is the lifecycle state of a process.
//
// State machine:
//
//	Ready (0)   -> Running (1)   [a worker picks the actor up]
//	Running (1) -> Ready (0)     [coroutine yields and still wants to run]
//	Running (1) -> Waiting (2)   [receive found no matching message]
//	Waiting (2) -> Ready (0)     [a sender pushed a message, or a timeout elapsed]
//	any         -> Exited (3)    [coroutine returned, or a fatal exit signal arrived]
//
// Exited is terminal: once observed there is no further transition, matching
// the "dead PCBs retain the Exited state for lookup-then-fail."
type ProcessState uint32

const (
	// StateReady means eligible to run.
	StateReady ProcessState = iota
	// StateRunning means currently executing on some worker.
	StateRunning
	// StateWaiting means suspended in receive; not eligible until woken or
	// timed out. The scheduler's resume pass skips Waiting actors.
	StateWaiting
	// StateExited is terminal.
	StateExited
)

// String implements fmt.Stringer.
func (s ProcessState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateWaiting:
		return "waiting"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// fastState is a lock-free state cell, one per PCB. Grounded on
// eventloop's FastState: pure atomic CAS, no mutex, so state reads never
// contend with the mailbox or link-set locks guarding the rest of the PCB.
type fastState struct {
	v atomic.Uint32
}

func newFastState(initial ProcessState) *fastState {
	s := &fastState{}
	s.v.Store(uint32(initial))
	return s
}

func (s *fastState) Load() ProcessState {
	return ProcessState(s.v.Load())
}

func (s *fastState) Store(state ProcessState) {
	s.v.Store(uint32(state))
}

// TryTransition attempts to atomically move from `from` to `to`. Returns
// false (no-op) if the current state isn't `from`.
func (s *fastState) TryTransition(from, to ProcessState) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}

// IsExited reports whether the state has reached the terminal Exited state.
func (s *fastState) IsExited() bool {
	return s.Load() == StateExited
}

// TransitionToExited CASes from whatever the current non-Exited state is to
// Exited, retrying only on a concurrent Ready<->Running<->Waiting churn; it
// returns false if the state was already Exited, so that exactly one of two
// racing exit paths (a coroutine finishing on its own vs. being killed by a
// linked peer's propagation, ) ever runs termination logic for
// a given process.
func (s *fastState) TransitionToExited() bool {
	for {
		cur := s.Load()
		if cur == StateExited {
			return false
		}
		if s.v.CompareAndSwap(uint32(cur), uint32(StateExited)) {
			return true
		}
	}
}
