// Package actor implements a preemptive M:N actor runtime: lightweight
// actor processes multiplexed across a fixed pool of OS worker threads,
// each actor with its own isolated heap, a FIFO mailbox, deep-copy message
// passing, reduction-based preemption, bidirectional linking with exit
// propagation, and a name registry.
//
// The package is consumed directly by Go callers, and also via the C ABI
// façade in cmd/mactorabi, which exports the same primitives for a
// compiled front-end that only speaks a flat C calling convention.
package actor
