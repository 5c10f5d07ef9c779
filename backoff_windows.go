//go:build windows

package actor

import "time"

// preciseSleep falls back to time.Sleep on Windows, mirroring eventloop's
// own wakeup_windows.go split: the x/sys/unix syscall path has no Windows
// equivalent worth reaching for here, so the portable stdlib path is used
// instead rather than pulling in x/sys/windows for a single syscall.
func preciseSleep(d time.Duration) {
	time.Sleep(d)
}
