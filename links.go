package actor

// Link establishes a bidirectional link between a and b. It is idempotent.
// If either PID is unknown or already Exited it links nothing and returns a
// *LinkError wrapping ErrUnknownProcess or ErrProcessExited.
func Link(a, b ProcessID) error {
	s := Current()
	if s == nil {
		return ErrSchedulerStopped
	}
	return s.Link(a, b)
}

// Unlink removes a bidirectional link between a and b, if one exists.
func Unlink(a, b ProcessID) {
	s := Current()
	if s == nil {
		return
	}
	s.Unlink(a, b)
}

// Link is the Scheduler-bound form of the package-level Link.
func (s *Scheduler) Link(a, b ProcessID) error {
	pa, ok := s.table.lookup(a)
	if !ok {
		return &LinkError{PID: a, Cause: ErrUnknownProcess}
	}
	pb, ok := s.table.lookup(b)
	if !ok {
		return &LinkError{PID: b, Cause: ErrUnknownProcess}
	}
	if pa.State() == StateExited {
		return &LinkError{PID: a, Cause: ErrProcessExited}
	}
	if pb.State() == StateExited {
		return &LinkError{PID: b, Cause: ErrProcessExited}
	}
	pa.addLink(b)
	pb.addLink(a)
	return nil
}

// Unlink is the Scheduler-bound form of the package-level Unlink.
func (s *Scheduler) Unlink(a, b ProcessID) {
	if pa, ok := s.table.lookup(a); ok {
		pa.removeLink(b)
	}
	if pb, ok := s.table.lookup(b); ok {
		pb.removeLink(a)
	}
}

// processExit runs the full exit sequence for pcb, which has just finished
// running its body with the given reason, in five steps:
//
//  1. Transition state to Exited (returning at once if another path already
//     did), then extract the terminate callback and the link set under
//     linkMu.
//  2. Invoke the terminate callback, if any, with panics contained so a
//     misbehaving callback can never block propagation.
//  3. Build the encoded exit signal once, shared by every linked peer.
//  4. For each linked peer: remove the reverse link; if already Exited,
//     skip; otherwise, if reason is Normal or the peer traps exits,
//     deliver the signal as an ordinary mailbox message, else mark the
//     peer Exited with a Linked reason and recurse into its own exit
//     sequence.
//  5. Unregister every name this process held.
func (s *Scheduler) processExit(pcb *PCB, reason ExitReason) {
	if !pcb.state.TransitionToExited() {
		// A concurrent link-propagation kill (killLinked) already exited
		// this process; that path owns termination/propagation/cleanup,
		// so running it again here would double-invoke the terminate
		// callback.
		return
	}

	pcb.linkMu.Lock()
	terminate := pcb.terminate
	links := make([]ProcessID, 0, len(pcb.links))
	for pid := range pcb.links {
		links = append(links, pid)
	}
	pcb.linkMu.Unlock()

	if terminate != nil {
		s.invokeTerminate(pcb, terminate, reason)
	}

	for _, peer := range links {
		s.propagateExit(pcb.PID, peer, reason)
	}

	s.registry.CleanupProcess(pcb.PID)

	s.logger.Debug().Uint64("pid", uint64(pcb.PID)).Str("reason", reason.String()).Log("actor exited")
}

// invokeTerminate calls fn, recovering and logging any panic rather than
// letting it escape into the worker loop.
func (s *Scheduler) invokeTerminate(pcb *PCB, fn TerminateFunc, reason ExitReason) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Err().Uint64("pid", uint64(pcb.PID)).Log("terminate callback panicked")
		}
	}()
	fn(reason)
}

// propagateExit applies step 4 above to a single linked peer: remove
// the reverse link, then either deliver an informational exit message or
// cascade the exit into the peer, depending on the peer's trap_exit setting
// and whether the reason is Normal.
func (s *Scheduler) propagateExit(exiter, peer ProcessID, reason ExitReason) {
	ppcb, ok := s.table.lookup(peer)
	if !ok {
		return
	}
	ppcb.removeLink(exiter)

	if ppcb.State() == StateExited {
		return
	}

	if reason.IsNormal() || ppcb.TrapExit() {
		s.deliverExitSignal(ppcb, exiter, reason)
		return
	}

	s.killLinked(ppcb, exiter, reason)
}

// killLinked forcibly exits ppcb with a Linked reason wrapping the original
// cause, then recurses so ppcb's own linked peers see the cascade too. If
// ppcb's coroutine is parked in Suspend (Waiting or voluntarily Ready
// between slices), this is final: it is simply never resumed again, since
// resumeReady only looks at Ready residents whose PCB state still says so.
// If it is genuinely mid-slice on another worker (State() observed
// Running), this runtime cannot reach into that goroutine and halt it - Go
// offers no safe preemptive abort - so the kill here only takes effect at
// that coroutine's own next Suspend or return, the same reduction-based
// preemption model this runtime already applies everywhere else. See
// DESIGN.md's open questions.
func (s *Scheduler) killLinked(ppcb *PCB, exiter ProcessID, cause ExitReason) {
	if !ppcb.state.TransitionToExited() {
		// ppcb's own coroutine already finished and ran processExit first;
		// nothing left for this path to do.
		return
	}

	ppcb.linkMu.Lock()
	terminate := ppcb.terminate
	links := make([]ProcessID, 0, len(ppcb.links))
	for pid := range ppcb.links {
		links = append(links, pid)
	}
	ppcb.linkMu.Unlock()

	linkedReason := Linked(exiter, cause)

	if terminate != nil {
		s.invokeTerminate(ppcb, terminate, linkedReason)
	}

	for _, next := range links {
		s.propagateExit(ppcb.PID, next, linkedReason)
	}

	s.registry.CleanupProcess(ppcb.PID)
	s.activeCount.Add(-1)
	s.metrics.Exited.Add(1)

	s.logger.Debug().Uint64("pid", uint64(ppcb.PID)).Str("reason", linkedReason.String()).Log("actor killed by link propagation")
}
