package actor

import (
	"sync"
	"time"
)

// worker is one of the scheduler's fixed pool of goroutines, each holding
// its own OS thread via runtime.LockOSThread for its lifetime: parallel OS
// threads, each cooperatively running one coroutine at a time. A worker
// owns every Coroutine it has ever created - they are never handed to
// another worker, which is this module's rendering of "thread-pinned".
type worker struct {
	id    int
	sched *Scheduler

	local *workDeque

	mu       sync.Mutex
	resident map[ProcessID]*PCB

	spins int
}

func newWorker(id int, sched *Scheduler) *worker {
	return &worker{
		id:       id,
		sched:    sched,
		local:    newWorkDeque(),
		resident: make(map[ProcessID]*PCB),
	}
}

// run is the worker's main loop, implementing step by step.
func (w *worker) run() {
	lockOSThread()
	defer unlockOSThread()

	for {
		progressed := w.resumeReady()

		if req, ok := w.acquireWork(); ok {
			w.startNew(req)
			progressed = true
		}

		if w.sched.shouldStop() {
			return
		}

		if !progressed {
			w.backoff()
		} else {
			w.spins = 0
		}
	}
}

// resumeReady resumes every resident coroutine whose PCB is Ready, skipping
// ones that are Waiting. It returns true if any resident coroutine was
// resumed this iteration.
func (w *worker) resumeReady() bool {
	w.mu.Lock()
	ready := make([]*PCB, 0, len(w.resident))
	for _, pcb := range w.resident {
		if pcb.State() == StateReady {
			ready = append(ready, pcb)
		}
	}
	w.mu.Unlock()

	for _, pcb := range ready {
		w.resumeOne(pcb)
	}
	return len(ready) > 0
}

// resumeOne resumes a single Ready coroutine and applies the post-resume
// state transition describes.
func (w *worker) resumeOne(pcb *PCB) {
	if !pcb.state.TryTransition(StateReady, StateRunning) {
		return // raced with a concurrent wake/exit; try again next iteration
	}

	pcb.coro.SetReductions(pcb.reductions)
	start := monotonicNow()
	result := pcb.coro.Resume()
	w.sched.metrics.ObserveYieldLatencyNanos(float64(monotonicNow() - start))

	switch result.reason {
	case suspendDone:
		w.exitActor(pcb, result.exit)
	case suspendYielded:
		pcb.state.TryTransition(StateRunning, StateReady)
	case suspendWaiting:
		// Receive already set state to Waiting before suspending; nothing
		// further to do until a sender calls wake().
	}
}

// acquireWork picks up the next SpawnRequest in priority order: the
// dedicated high-priority channel, then the local deque, then the global
// injector, then stealing from a peer.
func (w *worker) acquireWork() (*SpawnRequest, bool) {
	select {
	case req := <-w.sched.highPrio:
		return req, true
	default:
	}

	if req, ok := w.local.PopBack(); ok {
		return req, true
	}

	if req, ok := w.sched.injector.Pop(); ok {
		return req, true
	}

	for _, peer := range w.sched.workers {
		if peer == w {
			continue
		}
		if req, ok := w.local.StealFront(peer.local); ok {
			w.sched.metrics.Stolen.Add(1)
			return req, true
		}
	}

	return nil, false
}

// startNew attaches a Coroutine, pinned to this worker, to req's
// already-table-resident PCB (constructed synchronously by
// Scheduler.Spawn), then resumes it for its first scheduling slice
// immediately so the "Ready -> Running: a worker picks it up"
// happens within the same iteration that claimed the request.
func (w *worker) startNew(req *SpawnRequest) {
	pcb := req.PCB
	if pcb.State() == StateExited {
		// Killed by a link's exit propagation before any worker claimed its
		// SpawnRequest ; activeCount was already decremented by that propagation,
		// so there is nothing left to do but drop the request.
		return
	}
	pcb.coro = newCoroutine(pcb.PID, pcb.reductions, req.Body)
	pcb.coro.locals.owner = w

	w.mu.Lock()
	w.resident[pcb.PID] = pcb
	w.mu.Unlock()

	w.sched.logger.Debug().Uint64("pid", uint64(pcb.PID)).Int("worker", w.id).Log("actor started")
	w.resumeOne(pcb)
}

// exitActor runs the full exit sequence for pcb, then drops
// it from this worker's resident set and the scheduler's active count.
func (w *worker) exitActor(pcb *PCB, reason ExitReason) {
	w.sched.processExit(pcb, reason)

	w.mu.Lock()
	delete(w.resident, pcb.PID)
	w.mu.Unlock()

	w.sched.activeCount.Add(-1)
	w.sched.metrics.Exited.Add(1)
}

// backoff applies graduated idle policy: spin, then a
// short OS sleep, then a longer one, rate-limiting the diagnostic log line
// so a long-idle worker doesn't spam it.
func (w *worker) backoff() {
	w.spins++
	switch {
	case w.spins < 64:
		// tight spin; Gosched gives other goroutines (including this
		// worker's own peers) a chance without an OS-level sleep syscall.
		yieldToScheduler()
	case w.spins < 256:
		preciseSleep(100 * time.Microsecond)
	default:
		if _, allowed := w.sched.backoff.Allow("idle"); allowed {
			w.sched.logger.Debug().Int("worker", w.id).Log("idle backoff")
		}
		preciseSleep(time.Millisecond)
	}
}
