package actor

import "time"

// Sleep suspends the calling actor for roughly ms milliseconds without
// ever entering Waiting: a sleeping actor stays schedulable (Ready) between
// polls, rather than depend on an external wake, so a worker can still
// resume-and-immediately-reyield it to check other Ready residents'
// fairness. It is built the same way eventloop composes a bounded wait over
// repeated polling in its timer wheel: yield, check the deadline, repeat.
//
// Called from a bare thread (no installed coroutine context), there is no
// yielder to suspend through, so Sleep falls back to a blocking time.Sleep
// instead of panicking.
func Sleep(ms int64) {
	if currentLocals() == nil {
		if ms > 0 {
			time.Sleep(time.Duration(ms) * time.Millisecond)
		}
		return
	}
	if ms <= 0 {
		Yield()
		return
	}
	deadline := time.Now().Add(time.Duration(ms) * time.Millisecond)
	for time.Now().Before(deadline) {
		Yield()
	}
}

// SendAfter schedules a message to pid after ms milliseconds, independent
// of whether the calling actor is still alive when the timer fires. The
// payload is copied into an owned buffer immediately, since the caller's
// own memory (stack or heap) is free to change before the timer fires.
func SendAfter(pid ProcessID, ms int64, tag uint64, data []byte) {
	s := Current()
	if s == nil {
		return
	}
	owned := append([]byte(nil), data...)
	if ms <= 0 {
		s.Send(pid, tag, owned)
		return
	}
	time.AfterFunc(time.Duration(ms)*time.Millisecond, func() {
		s.Send(pid, tag, owned)
	})
}
