package actor

import "sync"

// mailboxRing is a power-of-two circular buffer of deep-copied message
// buffers, grounded on catrate's ringBuffer[E] technique (mask-based
// indexing instead of modulo, grow-by-doubling on overflow). Unlike
// catrate's read-only sliding window, this ring is a true FIFO queue: Pop
// advances the read cursor, Push advances the write cursor, and it grows
// instead of evicting.
type mailboxRing struct {
	buf  [][]byte
	r, w uint
}

func newMailboxRing() *mailboxRing {
	return &mailboxRing{buf: make([][]byte, 8)}
}

func (q *mailboxRing) mask(v uint) uint { return v & (uint(len(q.buf)) - 1) }

func (q *mailboxRing) Len() int { return int(q.w - q.r) }

func (q *mailboxRing) Push(msg []byte) {
	if q.Len() == len(q.buf) {
		q.grow()
	}
	q.buf[q.mask(q.w)] = msg
	q.w++
}

func (q *mailboxRing) Pop() ([]byte, bool) {
	if q.r == q.w {
		return nil, false
	}
	msg := q.buf[q.mask(q.r)]
	q.buf[q.mask(q.r)] = nil
	q.r++
	return msg, true
}

func (q *mailboxRing) grow() {
	next := make([][]byte, len(q.buf)*2)
	n := q.Len()
	for i := 0; i < n; i++ {
		next[i] = q.buf[q.mask(q.r+uint(i))]
	}
	q.buf = next
	q.r = 0
	q.w = uint(n)
}

// Mailbox is a thread-safe FIFO of message buffers: multi-producer,
// single-consumer, with O(1) push-to-back and pop-from-front. A single
// mutex is the ordering point for every sender, which is what gives
// "messages from one sender to one receiver are delivered in send order"
// and "the mailbox provides a global arrival order" guarantees.
//
// wake is signaled by the first Push after construction or after the last
// ResetWake; later pushes do not signal again until ResetWake is called -
// grounded on longpoll's Channel combinator, which composes a bounded wait
// over a plain Go channel the same way.
type Mailbox struct {
	mu    sync.Mutex
	ring  *mailboxRing
	wake  chan struct{}
	awoke bool // true while a wake is pending and unconsumed
}

// NewMailbox constructs an empty Mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{
		ring: newMailboxRing(),
		wake: make(chan struct{}, 1),
	}
}

// Push appends msg to the back of the mailbox and signals the wake channel
// if no signal is pending since the last ResetWake. The wake happens-after the push completes (the send
// under the same mutex), satisfying the "a wake caused by send
// happens-after the corresponding mailbox push."
func (m *Mailbox) Push(msg []byte) {
	m.mu.Lock()
	m.ring.Push(msg)
	m.signalLocked()
	m.mu.Unlock()
}

func (m *Mailbox) signalLocked() {
	if !m.awoke {
		m.awoke = true
		select {
		case m.wake <- struct{}{}:
		default:
		}
	}
}

// Pop removes and returns the oldest message, or (nil, false) if empty.
func (m *Mailbox) Pop() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Pop()
}

// Len reports the number of queued, undelivered messages.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Len()
}

// WakeChan returns the channel a waiting receiver can select on; it
// receives a value on the first Push after construction or after the last
// ResetWake. Consumers must re-check Pop after waking, since the
// channel only signals "something may have arrived," not "the mailbox has
// exactly one message."
func (m *Mailbox) WakeChan() <-chan struct{} {
	return m.wake
}

// ResetWake clears a pending (unconsumed) wake signal, called by the
// scheduler right before transitioning an actor to Waiting so that a stale
// signal from an already-drained push doesn't cause an immediate spurious
// wake. Safe to call even if no wake is pending.
func (m *Mailbox) ResetWake() {
	m.mu.Lock()
	m.awoke = false
	m.mu.Unlock()
	select {
	case <-m.wake:
	default:
	}
}
