package actor

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// goroutineID extracts the calling goroutine's numeric ID by parsing the
// header line of runtime.Stack's output ("goroutine 123 [running]:"). This
// is the standard trick used throughout the Go ecosystem for approximating
// per-goroutine local storage, which the language itself doesn't expose.
// It is used here, rather than threading an explicit handle through every
// call, because the ABI functions (actor_self, reduction_check, Yield)
// take no actor-handle argument at all - they read "whatever is current on
// this thread," and a goroutine is this runtime's rendering of "thread."
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return 0
	}
	b = b[len(prefix):]
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// goroutineLocals mirrors the thread-local conventions this runtime needs:
// current_pid, the current yielder, and a shadow reduction counter. owner
// additionally records which worker's deque a Spawn call made from this
// coroutine should land on, giving new actors the same cache-local
// fast-path residency classic work-stealing schedulers rely on.
type goroutineLocals struct {
	pid        ProcessID
	y          *yielder
	reductions uint32
	owner      *worker
}

var (
	localsMu sync.RWMutex
	locals   = make(map[uint64]*goroutineLocals)
)

// installLocals associates l with the calling goroutine, overwriting any
// previous association. Called by a coroutine's own bootstrap on its
// backing goroutine, before the actor body runs.
func installLocals(l *goroutineLocals) {
	gid := goroutineID()
	localsMu.Lock()
	locals[gid] = l
	localsMu.Unlock()
}

// clearLocals removes the calling goroutine's association entirely, used
// when a coroutine's goroutine is about to terminate for good.
func clearLocals() {
	gid := goroutineID()
	localsMu.Lock()
	delete(locals, gid)
	localsMu.Unlock()
}

// currentLocals returns the calling goroutine's locals, or nil if none are
// installed (i.e. this is a "bare" thread - no actor context).
func currentLocals() *goroutineLocals {
	gid := goroutineID()
	localsMu.RLock()
	l := locals[gid]
	localsMu.RUnlock()
	return l
}
