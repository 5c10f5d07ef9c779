// Command mactorabi is built with -buildmode=c-shared to give a compiled
// front-end (the "host project," whatever language its code
// generator targets) a flat C calling convention onto the actor runtime in
// the root package. Every exported function here is a thin, allocation-
// aware adapter: it converts between C pointer/length pairs and Go slices,
// then delegates directly to actor.* - no behavior lives in this package
// that isn't already implemented there.
package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/snowdamiz/mactor"
)

// rt_init_actor starts the scheduler with numWorkers OS-pinned worker
// threads (0 meaning runtime.NumCPU()). Returns 0 on success, nonzero if a
// runtime is already initialized in this process.
//
//export rt_init_actor
func rt_init_actor(numWorkers C.int) C.int {
	_, err := actor.Init(actor.WithNumSchedulers(int(numWorkers)))
	if err != nil {
		return -1
	}
	return 0
}

// rt_run_scheduler blocks the calling OS thread until shutdown completes.
// Intended to be called from the host's main thread after spawning the
// program's root actor(s) from a different one.
//
//export rt_run_scheduler
func rt_run_scheduler() {
	if s := actor.Current(); s != nil {
		s.Run()
	}
}

// rt_shutdown requests a graceful stop: workers exit once every actor has
// exited, without forcibly killing anything in flight.
//
//export rt_shutdown
func rt_shutdown() {
	if s := actor.Current(); s != nil {
		s.Shutdown()
	}
}

// actor_spawn is deliberately absent from this façade: the C ABI
// speaks in terms of a compiled function pointer for the actor body, which
// cgo cannot safely turn into a Go actor.Body closure without the host
// also supplying a calling convention for resuming into compiled code at
// each Yield point. Exposing it would mean inventing that protocol rather
// than reflecting one this runtime's design actually specifies, so it is
// left as a documented gap (see DESIGN.md) rather than a fabricated stub.

// actor_self returns the calling coroutine's own PID, or 0 (NoPID) if
// called from a non-actor (bare) thread.
//
//export actor_self
func actor_self() C.uint64_t {
	return C.uint64_t(actor.Self())
}

// actor_send deep-copies msgLen bytes starting at msgPtr into pid's
// mailbox, tagged with tag. A nil msgPtr with msgLen 0 is a valid
// zero-payload message.
//
//export actor_send
func actor_send(pid C.uint64_t, tag C.uint64_t, msgPtr *C.uint8_t, msgLen C.int) {
	data := cBytes(msgPtr, msgLen)
	actor.Send(actor.ProcessID(pid), uint64(tag), data)
}

// actor_receive blocks the calling coroutine per timeoutMs's sign
// convention (0 non-blocking, <0 forever, >0 bounded - see actor.Receive).
// On success it returns 1, writes the message's type tag to outTag, and
// returns a pointer (via outPtr/outLen) into the receiving actor's own
// heap - valid for the lifetime of that heap, never freed by the caller.
// On timeout/empty it returns 0 and leaves the out-parameters untouched.
//
//export actor_receive
func actor_receive(timeoutMs C.int64_t, outTag *C.uint64_t, outPtr **C.uint8_t, outLen *C.int) C.int {
	msg, ok := actor.Receive(int64(timeoutMs))
	if !ok {
		return 0
	}
	*outTag = C.uint64_t(msg.TypeTag)
	*outLen = C.int(len(msg.Data))
	if len(msg.Data) == 0 {
		*outPtr = nil
	} else {
		*outPtr = (*C.uint8_t)(unsafe.Pointer(&msg.Data[0]))
	}
	return 1
}

// actor_link establishes a bidirectional link between a and b. Returns 0
// on success, -1 if either PID is unknown or already exited.
//
//export actor_link
func actor_link(a, b C.uint64_t) C.int {
	if err := actor.Link(actor.ProcessID(a), actor.ProcessID(b)); err != nil {
		return -1
	}
	return 0
}

// actor_unlink removes a bidirectional link between a and b, if any.
//
//export actor_unlink
func actor_unlink(a, b C.uint64_t) {
	actor.Unlink(actor.ProcessID(a), actor.ProcessID(b))
}

// actor_register binds a nul-terminated name to pid. Returns 0 on success,
// -1 if the name is already taken or pid is unknown.
//
//export actor_register
func actor_register(name *C.char, pid C.uint64_t) C.int {
	if err := actor.Register(C.GoString(name), actor.ProcessID(pid)); err != nil {
		return -1
	}
	return 0
}

// actor_whereis resolves a nul-terminated registered name to a PID, or 0
// (NoPID) if unbound.
//
//export actor_whereis
func actor_whereis(name *C.char) C.uint64_t {
	return C.uint64_t(actor.Whereis(C.GoString(name)))
}

// actor_set_trap_exit toggles whether the calling actor's exit signals
// arrive as ordinary messages instead of crashing it.
//
//export actor_set_trap_exit
func actor_set_trap_exit(trap C.int) {
	actor.SetTrapExit(trap != 0)
}

// reduction_check decrements the calling coroutine's shadow reduction
// counter, cooperatively yielding once it reaches zero. A no-op on a
// non-actor thread.
//
//export reduction_check
func reduction_check() {
	actor.ReductionCheck()
}

// gc_alloc_actor allocates size bytes, aligned to align, from the calling
// actor's own heap (or the process-wide fallback heap on a bare thread),
// returning a pointer valid for the allocating actor's lifetime.
//
//export gc_alloc_actor
func gc_alloc_actor(size, align C.int) *C.uint8_t {
	var h *actor.Heap
	if pid := actor.Self(); pid != actor.NoPID {
		if s := actor.Current(); s != nil {
			if pcb, ok := s.PCBFor(pid); ok {
				h = pcb.Heap()
			}
		}
	}
	if h == nil {
		h = actor.DefaultHeap()
	}
	buf := h.Alloc(int(size), int(align))
	if len(buf) == 0 {
		return nil
	}
	return (*C.uint8_t)(unsafe.Pointer(&buf[0]))
}

// timer_sleep cooperatively suspends the calling actor for ms
// milliseconds, remaining schedulable (Ready) throughout.
//
//export timer_sleep
func timer_sleep(ms C.int64_t) {
	actor.Sleep(int64(ms))
}

// timer_send_after schedules a send to pid after ms milliseconds,
// independent of whether the calling actor is still alive when it fires.
//
//export timer_send_after
func timer_send_after(pid C.uint64_t, ms C.int64_t, tag C.uint64_t, msgPtr *C.uint8_t, msgLen C.int) {
	data := cBytes(msgPtr, msgLen)
	actor.SendAfter(actor.ProcessID(pid), int64(ms), uint64(tag), data)
}

// cBytes copies a C pointer/length pair into an owned Go slice. Copying
// (rather than wrapping with unsafe.Slice) is deliberate: these bytes cross
// into actor.Send/SendAfter, which only deep-copy their input once, at the
// point the message-passing contract actually requires it - the
// copy here is what makes that single deep copy correct even though the
// caller's C-side buffer may be freed or reused immediately after return.
func cBytes(ptr *C.uint8_t, n C.int) []byte {
	if ptr == nil || n <= 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(ptr), n)
}

func main() {}
