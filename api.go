package actor

import "time"

// Receive is the actor_receive(): it must be called from inside a
// running actor's own coroutine. timeoutMs selects one of three modes:
//
//	 0  non-blocking: check the mailbox once and return immediately.
//	< 0  wait forever: suspend (Waiting) until a message arrives.
//	> 0  bounded wait: suspend until a message arrives or timeoutMs elapses.
//
// It returns ok=false on a non-blocking miss or a timeout; true PCB state
// is never exposed here beyond the built-in Ready/Waiting/Running cycle
// already described in state.go.
func Receive(timeoutMs int64) (Message, bool) {
	l := currentLocals()
	if l == nil {
		return Message{}, false
	}
	s := Current()
	if s == nil {
		return Message{}, false
	}
	pcb, ok := s.table.lookup(l.pid)
	if !ok {
		return Message{}, false
	}

	if timeoutMs == 0 {
		if buf, ok := pcb.mailbox.Pop(); ok {
			return DecodeMessage(buf), true
		}
		return Message{}, false
	}

	hasDeadline := timeoutMs > 0
	var deadline time.Time
	var timer *time.Timer
	if hasDeadline {
		deadline = time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
		timer = time.AfterFunc(time.Until(deadline), func() { wake(pcb) })
		defer timer.Stop()
	}

	for {
		if buf, ok := pcb.mailbox.Pop(); ok {
			return DecodeMessage(buf), true
		}
		if hasDeadline && !time.Now().Before(deadline) {
			return Message{}, false
		}
		pcb.mailbox.ResetWake()
		if !pcb.state.TryTransition(StateRunning, StateWaiting) {
			// Exited by a linked peer's propagation during this slice: park
			// for good rather than overwrite the terminal state.
			l.y.Suspend(suspendWaiting)
			continue
		}
		// A send or the deadline timer may have fired before Waiting was
		// visible to its wake; re-check instead of sleeping through it.
		expired := hasDeadline && !time.Now().Before(deadline)
		if (pcb.mailbox.Len() > 0 || expired) && pcb.state.TryTransition(StateWaiting, StateRunning) {
			continue
		}
		l.y.Suspend(suspendWaiting)
	}
}

// Spawn is the package-level convenience wrapper over the installed
// scheduler's Spawn, matching the no-explicit-handle calling
// convention.
func Spawn(priority Priority, body Body) (ProcessID, error) {
	s := Current()
	if s == nil {
		return NoPID, ErrSchedulerStopped
	}
	return s.Spawn(priority, body)
}

// Send is the package-level convenience wrapper over the installed
// scheduler's Send.
func Send(pid ProcessID, tag uint64, data []byte) {
	s := Current()
	if s == nil {
		return
	}
	s.Send(pid, tag, data)
}

// Register binds name to pid in the installed scheduler's registry and
// records the name on pid's PCB. Exit cleanup removes it through the
// registry's PID index in O(k).
func Register(name string, pid ProcessID) error {
	s := Current()
	if s == nil {
		return ErrSchedulerStopped
	}
	pcb, ok := s.table.lookup(pid)
	if !ok {
		return ErrUnknownProcess
	}
	if err := s.registry.Register(name, pid); err != nil {
		return err
	}
	pcb.addName(name)
	return nil
}

// Whereis looks up a registered name in the installed scheduler.
func Whereis(name string) ProcessID {
	s := Current()
	if s == nil {
		return NoPID
	}
	return s.registry.Whereis(name)
}

// Unregister removes name's binding in the installed scheduler.
func Unregister(name string) {
	s := Current()
	if s == nil {
		return
	}
	s.registry.Unregister(name)
}

// SetTrapExit toggles whether the calling actor receives exit signals from
// its links as ordinary messages instead of being killed by them.
func SetTrapExit(trap bool) {
	l := currentLocals()
	if l == nil {
		return
	}
	s := Current()
	if s == nil {
		return
	}
	if pcb, ok := s.table.lookup(l.pid); ok {
		pcb.SetTrapExit(trap)
	}
}

// SetTerminate installs the calling actor's terminate callback.
func SetTerminate(fn TerminateFunc) {
	l := currentLocals()
	if l == nil {
		return
	}
	s := Current()
	if s == nil {
		return
	}
	if pcb, ok := s.table.lookup(l.pid); ok {
		pcb.SetTerminate(fn)
	}
}
