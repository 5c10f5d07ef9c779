package actor

import "sync"

// TerminateFunc is invoked once, immediately before exit-signal propagation
// begins, on the goroutine running the exit sequence: the owning worker for
// a process whose body returned, or the propagating exiter's goroutine for a
// process killed through a link. A panic inside it is recovered so that a
// misbehaving callback can never prevent propagation or registry cleanup
// from completing.
type TerminateFunc func(reason ExitReason)

// PCB is the Process Control Block: the runtime's complete per-actor
// record. It is shared between its owning worker, which
// may read or write any field, and every other actor in the system, which
// may push to its mailbox, read its state, and add/remove themselves from
// its link set. linkMu is the single coarse-grained lock guarding the
// fields that cross that boundary (links, trapExit, terminate callback);
// state has its own lock-free cell; the mailbox and heap have their own
// internal synchronization (or none, for the heap, since only the owner
// ever touches it).
type PCB struct {
	PID      ProcessID
	Priority Priority

	state *fastState

	mailbox *Mailbox
	heap    *Heap
	coro    *Coroutine

	linkMu    sync.Mutex
	links     map[ProcessID]struct{}
	trapExit  bool
	terminate TerminateFunc

	reductions uint32 // budget refilled at the start of each scheduling slice

	names []string // names registered for this PID via the package-level Register; not pruned by Unregister
}

// newPCB constructs a PCB in the Ready state with default priority Normal,
// an empty mailbox, a fresh heap, the default reduction budget, an empty
// link set, trapExit=false, and no terminate callback. The coroutine
// itself is attached separately once the actor body is known (see
// scheduler.go), since a SpawnRequest must be fully Send-able before any
// goroutine exists.
func newPCB(pid ProcessID, priority Priority) *PCB {
	return &PCB{
		PID:        pid,
		Priority:   priority,
		state:      newFastState(StateReady),
		mailbox:    NewMailbox(),
		heap:       NewHeap(),
		links:      make(map[ProcessID]struct{}),
		reductions: DefaultReductionBudget,
	}
}

// State returns the current lifecycle state.
func (p *PCB) State() ProcessState { return p.state.Load() }

// Mailbox returns the actor's mailbox.
func (p *PCB) Mailbox() *Mailbox { return p.mailbox }

// Heap returns the actor's heap.
func (p *PCB) Heap() *Heap { return p.heap }

// SetTrapExit toggles whether incoming exit signals arrive as ordinary
// mailbox messages (true) or crash this process (false, the default).
func (p *PCB) SetTrapExit(trap bool) {
	p.linkMu.Lock()
	p.trapExit = trap
	p.linkMu.Unlock()
}

// TrapExit reports the current trap_exit setting.
func (p *PCB) TrapExit() bool {
	p.linkMu.Lock()
	defer p.linkMu.Unlock()
	return p.trapExit
}

// SetTerminate installs (or replaces) the terminate callback.
func (p *PCB) SetTerminate(fn TerminateFunc) {
	p.linkMu.Lock()
	p.terminate = fn
	p.linkMu.Unlock()
}

// addLink inserts other into this PCB's link set. Idempotent.
func (p *PCB) addLink(other ProcessID) {
	p.linkMu.Lock()
	p.links[other] = struct{}{}
	p.linkMu.Unlock()
}

// removeLink removes other from this PCB's link set, a no-op if absent.
func (p *PCB) removeLink(other ProcessID) {
	p.linkMu.Lock()
	delete(p.links, other)
	p.linkMu.Unlock()
}

// hasLink reports whether other is currently linked to this PCB.
func (p *PCB) hasLink(other ProcessID) bool {
	p.linkMu.Lock()
	defer p.linkMu.Unlock()
	_, ok := p.links[other]
	return ok
}

// linkSnapshot returns a copy of the current link set, safe to range over
// without holding any lock - the same copy-out-under-linkMu that
// processExit and killLinked perform inline before propagating an exit.
func (p *PCB) linkSnapshot() []ProcessID {
	p.linkMu.Lock()
	defer p.linkMu.Unlock()
	out := make([]ProcessID, 0, len(p.links))
	for pid := range p.links {
		out = append(out, pid)
	}
	return out
}

// addName records that name was bound to this PID in the registry. Exit
// cleanup does not read this list; it uses the registry's own PID index.
func (p *PCB) addName(name string) {
	p.linkMu.Lock()
	p.names = append(p.names, name)
	p.linkMu.Unlock()
}

// namesSnapshot returns the names currently bound to this PID.
func (p *PCB) namesSnapshot() []string {
	p.linkMu.Lock()
	defer p.linkMu.Unlock()
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}
