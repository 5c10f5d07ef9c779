package actor

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-catrate"
)

// Scheduler owns a fixed pool of worker threads, the process table, the
// name registry, and the queues that feed spawn requests to workers. Only
// one Scheduler is meant to back a process's actor runtime at a time;
// Init/globalScheduler below model an rt_init_actor/rt_run_scheduler
// singleton.
type Scheduler struct {
	table    *processTable
	registry *Registry

	highPrio chan *SpawnRequest
	injector *injector
	workers  []*worker

	shuttingDown atomic.Bool
	activeCount  atomic.Int64

	logger  *Logger
	metrics *Metrics

	backoff *catrate.Limiter

	startOnce sync.Once
	done      chan struct{}
}

// globalScheduler backs the package-level Spawn/Send/Receive/... functions
// and the C ABI façade, both of which are specified with no explicit
// scheduler handle parameter.
var globalScheduler atomic.Pointer[Scheduler]

// Init installs and starts the scheduler, rt_init_actor. It
// is idempotent: a second call while one is already running returns
// ErrSchedulerRunning rather than starting a second pool.
func Init(opts ...SchedulerOption) (*Scheduler, error) {
	if globalScheduler.Load() != nil {
		return nil, ErrSchedulerRunning
	}
	s := NewScheduler(opts...)
	if !globalScheduler.CompareAndSwap(nil, s) {
		return nil, ErrSchedulerRunning
	}
	s.Start()
	return s, nil
}

// Current returns the process-wide Scheduler installed by Init, or nil.
func Current() *Scheduler {
	return globalScheduler.Load()
}

// NewScheduler constructs (but does not start) a Scheduler.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	cfg := resolveSchedulerOptions(opts)

	s := &Scheduler{
		table:    newProcessTable(),
		registry: NewRegistry(),
		highPrio: make(chan *SpawnRequest, cfg.highPrioBuffer),
		injector: newInjector(),
		logger:   cfg.logger,
		metrics:  NewMetrics(),
		done:     make(chan struct{}),
		backoff: catrate.NewLimiter(map[time.Duration]int{
			cfg.idleLogWindow: cfg.idleLogBurst,
		}),
	}

	n := cfg.numSchedulers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	s.workers = make([]*worker, n)
	for i := range s.workers {
		s.workers[i] = newWorker(i, s)
	}
	return s
}

// Start launches every worker goroutine. Safe to call more than once;
// only the first call has any effect.
func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		s.logger.Info().Int("workers", len(s.workers)).Log("scheduler starting")
		var wg sync.WaitGroup
		wg.Add(len(s.workers))
		for _, w := range s.workers {
			go func(w *worker) {
				defer wg.Done()
				w.run()
			}(w)
		}
		go func() {
			wg.Wait()
			close(s.done)
		}()
	})
}

// Run blocks the calling goroutine until shutdown (rt_run_scheduler).
func (s *Scheduler) Run() {
	<-s.done
}

// Shutdown requests that every worker exit once there are no live actors
// left. It does not forcibly kill in-flight actors.
func (s *Scheduler) Shutdown() {
	s.shuttingDown.Store(true)
}

// shouldStop reports whether a worker should exit its loop: shutdown was
// requested and no actors remain live.
func (s *Scheduler) shouldStop() bool {
	return s.shuttingDown.Load() && s.activeCount.Load() == 0
}

// Spawn enqueues a SpawnRequest and returns its PID immediately - the
// child has not necessarily begun executing yet, but the PID is valid and
// sendable-to right away.
func (s *Scheduler) Spawn(priority Priority, body Body) (ProcessID, error) {
	if !priority.Valid() {
		return NoPID, ErrInvalidPriority
	}
	pid := nextProcessID()
	s.activeCount.Add(1)
	pcb := newPCB(pid, priority)
	s.table.insert(pcb)
	req := &SpawnRequest{PCB: pcb, Body: body}
	switch {
	case priority == PriorityHigh:
		s.highPrio <- req
	default:
		// A spawn made from within a running actor lands on that actor's
		// own worker's local deque first, the same cache-local fast path
		// classic work-stealing schedulers give a goroutine that spawns
		// more work for itself; anything else (the initial spawn, or a
		// Spawn call from ordinary Go code) goes to the shared injector.
		if l := currentLocals(); l != nil && l.owner != nil {
			l.owner.local.PushBack(req)
		} else {
			s.injector.Push(req)
		}
	}
	s.metrics.Spawned.Add(1)
	return pid, nil
}

// Send deep-copies data into pid's heap, pushes it to pid's mailbox, and
// wakes pid if it is Waiting. Sending to an unknown or already-Exited
// process is silently dropped, matching BEAM's "missing target" behavior
// for send.
func (s *Scheduler) Send(pid ProcessID, tag uint64, data []byte) {
	pcb, ok := s.table.lookup(pid)
	if !ok || pcb.State() == StateExited {
		return
	}
	msg := NewMessage(tag, data)
	buf := msg.DeepCopyTo(pcb.Heap())
	pcb.Mailbox().Push(buf)
	wake(pcb)
	s.metrics.Delivered.Add(1)
}

// PCBFor exposes the process table lookup used by the C ABI façade's
// gc_alloc_actor, which needs the calling actor's own Heap without
// otherwise reaching into scheduler internals.
func (s *Scheduler) PCBFor(pid ProcessID) (*PCB, bool) {
	return s.table.lookup(pid)
}

// wake transitions pcb from Waiting to Ready, a no-op if it isn't Waiting
// (e.g. it's Running and will simply see the message next receive, or it
// has already Exited).
func wake(pcb *PCB) {
	pcb.state.TryTransition(StateWaiting, StateReady)
}

// deliverExitSignal pushes an encoded exit signal into target's mailbox
// as an ordinary (if specially tagged) message and wakes it, used both for
// trapping peers and for the informational case of a Normal exit.
func (s *Scheduler) deliverExitSignal(target *PCB, exiter ProcessID, reason ExitReason) {
	// NewMessage rejects ExitSignalTag since it's reserved for exactly this
	// call site; build the Message directly instead of going through it.
	msg := Message{TypeTag: ExitSignalTag, Data: encodeExitReason(exiter, reason)}
	buf := msg.DeepCopyTo(target.Heap())
	target.Mailbox().Push(buf)
	wake(target)
}
