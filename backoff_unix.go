//go:build !windows

package actor

import (
	"time"

	"golang.org/x/sys/unix"
)

// preciseSleep sleeps for roughly d via a direct nanosleep syscall rather
// than time.Sleep's runtime timer, the same reach-for-x/sys-directly move
// eventloop's per-OS wakeup_<os>.go files make for latency-sensitive waits
// (there: a self-pipe/eventfd poller wakeup; here: both sleeping rungs of
// the worker backoff ladder, where timer-heap jitter is the thing being
// avoided).
// Interrupted sleeps are simply not retried - a worker that wakes early
// just finds no work and loops back into backoff on its own.
func preciseSleep(d time.Duration) {
	ts := unix.NsecToTimespec(d.Nanoseconds())
	_ = unix.Nanosleep(&ts, nil)
}
