package actor

import (
	"runtime"
	"time"
)

// lockOSThread and unlockOSThread pin the calling goroutine to its current
// OS thread for the worker's entire lifetime, the closest idiomatic Go
// equivalent of "parallel OS threads" requirement - a worker
// never migrates between threads, even though the coroutines it resumes
// are ordinary goroutines rather than raw stacks switched in place.
func lockOSThread() { runtime.LockOSThread() }

func unlockOSThread() { runtime.UnlockOSThread() }

// yieldToScheduler gives Go's own scheduler a chance to run other
// goroutines without an OS-level sleep, the first rung of the graduated
// backoff ladder in worker.backoff.
func yieldToScheduler() { runtime.Gosched() }

// monotonicNow returns a monotonic nanosecond reading suitable for
// measuring elapsed durations (never for wall-clock display). Kept as its
// own function, instead of inlining time.Now() at each call site, so the
// single clock source scheduler/worker code depends on is named once.
func monotonicNow() int64 { return int64(time.Since(monotonicEpoch)) }

var monotonicEpoch = time.Now()
