package actor

import "fmt"

// DefaultReductionBudget is the number of reductions an actor is given on
// each scheduling slice before Yield is forced.
const DefaultReductionBudget uint32 = 4000

// Body is the function compiled/generated actor code runs as. It receives
// the yielder so generated call sites *could* thread it explicitly, but
// idiomatic callers instead call Yield() / ReductionCheck() with no
// arguments - those consult the calling goroutine's installed locals, the
// same way the ABI's reduction_check() and actor_self() do.
type Body func(y *yielder) ExitReason

// suspendReason is why a resume returned control to the worker.
type suspendReason uint8

const (
	suspendYielded suspendReason = iota // wants to keep running later
	suspendWaiting                      // blocked in receive, needs a wake
	suspendDone                         // coroutine body returned
)

// resumeResult is sent back to the worker across yieldCh on every
// suspension point.
type resumeResult struct {
	reason suspendReason
	exit   ExitReason // only meaningful when reason == suspendDone
}

// yielder is the coroutine-local handle whose Suspend method gives control
// back to the scheduler. A stackful coroutine's handle is normally valid
// only while its frame is alive on its thread's native stack; here it is
// valid for exactly as long as the backing goroutine is alive, which plays
// the same role.
type yielder struct {
	resumeCh chan struct{}
	yieldCh  chan resumeResult
	locals   *goroutineLocals
}

// Suspend hands control back to the worker with the given reason and
// blocks until the worker resumes this coroutine again.
func (y *yielder) Suspend(reason suspendReason) {
	y.yieldCh <- resumeResult{reason: reason}
	<-y.resumeCh
}

// Yield is the yield_current(): it must be callable from arbitrary
// call depth inside a running actor body. It panics loudly
// (*YieldOutsideCoroutineError) if no coroutine context is installed on the
// calling goroutine.
func Yield() {
	l := currentLocals()
	if l == nil || l.y == nil {
		panic(&YieldOutsideCoroutineError{})
	}
	l.y.Suspend(suspendYielded)
}

// ReductionCheck is the reduction_check(): decrement the calling
// goroutine's shadow reduction counter, yielding if it has been exhausted.
// Calling it from a bare thread (no installed locals) is a documented no-op
// rather than a panic, since compiled init code may call it defensively
// before any actor context exists.
func ReductionCheck() {
	l := currentLocals()
	if l == nil {
		return
	}
	if l.reductions == 0 {
		return
	}
	l.reductions--
	if l.reductions == 0 {
		l.y.Suspend(suspendYielded)
	}
}

// Self is the actor_self(): returns NoPID when no actor is running on
// the calling goroutine.
func Self() ProcessID {
	l := currentLocals()
	if l == nil {
		return NoPID
	}
	return l.pid
}

// Coroutine is the Go rendering of a stackful coroutine handle: a
// dedicated goroutine paired with its owning worker through an unbuffered
// resume/yield rendezvous, substituting for raw stack switching since Go
// offers no portable way to swap stacks directly. It is created on, and
// may only be resumed by, the
// worker that serviced its SpawnRequest - the Go type itself doesn't
// enforce that (goroutines are always "Send" in the Go sense), but the
// scheduler never hands a Coroutine's resume channel to more than one
// worker, which is the property the "thread-pinned" language is
// protecting.
type Coroutine struct {
	resumeCh chan struct{}
	yieldCh  chan resumeResult
	locals   *goroutineLocals
	started  bool
	finished bool
}

// newCoroutine constructs a Coroutine for the given PID and body and starts
// its backing goroutine, which blocks without running the body until the
// first Resume. The worker calls it only after claiming a SpawnRequest, so
// no goroutine exists for a request while it is still queued or stolen.
func newCoroutine(pid ProcessID, reductions uint32, body Body) *Coroutine {
	c := &Coroutine{
		resumeCh: make(chan struct{}),
		yieldCh:  make(chan resumeResult),
	}
	c.locals = &goroutineLocals{pid: pid, reductions: reductions}
	c.locals.y = &yielder{resumeCh: c.resumeCh, yieldCh: c.yieldCh, locals: c.locals}
	go c.run(body)
	return c
}

// run is the body of the backing goroutine. It blocks on resumeCh before
// ever touching user code, installs the goroutine-local actor context, runs
// the body to completion, and reports suspendDone exactly once.
func (c *Coroutine) run(body Body) {
	<-c.resumeCh
	installLocals(c.locals)
	defer clearLocals()

	reason, err := c.safeInvoke(body)
	c.yieldCh <- resumeResult{reason: suspendDone, exit: reasonFromPanic(reason, err)}
}

// safeInvoke runs body, recovering a panic into an Error exit reason rather
// than letting it escape onto a worker's goroutine: an actor's own crash is
// ordinary control flow, never something that should bring down the
// scheduler.
func (c *Coroutine) safeInvoke(body Body) (ExitReason, any) {
	var (
		reason  ExitReason
		panicVal any
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicVal = r
			}
		}()
		reason = body(c.locals.y)
	}()
	return reason, panicVal
}

func reasonFromPanic(reason ExitReason, panicVal any) ExitReason {
	if panicVal == nil {
		return reason
	}
	return Errorf("panic: %v", panicVal)
}

// Resume hands control to the coroutine and blocks until it suspends again,
// returning the suspension reason (and, if the coroutine finished, its exit
// reason). It must only be called by the single worker that owns this
// coroutine, and only while that worker isn't itself mid-resume on it.
func (c *Coroutine) Resume() resumeResult {
	if c.finished {
		panic(fmt.Sprintf("actor: resume of finished coroutine for pid %d", c.locals.pid))
	}
	c.started = true
	c.resumeCh <- struct{}{}
	result := <-c.yieldCh
	if result.reason == suspendDone {
		c.finished = true
	}
	return result
}

// Finished reports whether the coroutine body has already returned.
func (c *Coroutine) Finished() bool {
	return c.finished
}

// SetReductions overwrites the shadow reduction counter, called by the
// scheduler immediately before each Resume to refill the budget from the
// PCB.
func (c *Coroutine) SetReductions(n uint32) {
	c.locals.reductions = n
}
