package actor

import (
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/constraints"
)

// Metrics holds scheduler-wide counters and a streaming estimate of
// per-slice resume duration ("yield latency"), for diagnostic tooling.
// Counters are plain atomics; the latency estimator is mutex-guarded since,
// unlike eventloop's single-threaded pSquareQuantile, every worker updates
// this one concurrently.
type Metrics struct {
	Spawned   atomic.Int64
	Exited    atomic.Int64
	Stolen    atomic.Int64
	Delivered atomic.Int64

	yieldLatency *quantileEstimator
	recent       *recentRing[int64]
}

// NewMetrics constructs a Metrics tracking p50/p99 yield latency, plus a
// fixed-size window of the most recent raw samples for diagnostic dumps
// (where a distribution estimate alone doesn't answer "what just happened").
func NewMetrics() *Metrics {
	return &Metrics{
		yieldLatency: newQuantileEstimator(0.5, 0.99),
		recent:       newRecentRing[int64](64),
	}
}

// ObserveYieldLatencyNanos records the wall-clock duration of one Resume
// call: from the worker handing control to a coroutine until it next
// suspends (yield, reduction check or receive) or finishes.
func (m *Metrics) ObserveYieldLatencyNanos(ns float64) {
	m.yieldLatency.Update(ns)
	m.recent.Push(int64(ns))
}

// RecentYieldLatenciesNanos returns a snapshot of the most recent yield
// latency samples, oldest first.
func (m *Metrics) RecentYieldLatenciesNanos() []int64 {
	return m.recent.Snapshot()
}

// YieldLatencyQuantile returns the current estimate for the quantile at
// index i (0 => p50, 1 => p99, given NewMetrics's construction above).
func (m *Metrics) YieldLatencyQuantile(i int) float64 {
	return m.yieldLatency.Quantile(i)
}

// quantileEstimator is a thread-safe streaming multi-quantile tracker using
// the P² algorithm (Jain & Chlamtac, 1985) - the same O(1)-per-observation
// technique eventloop's psquare.go uses for tick-latency histograms, here
// generalized to actor yield-latency and made safe for concurrent Update
// from every worker goroutine.
type quantileEstimator struct {
	mu    sync.Mutex
	marks []*pSquareMark
	sum   float64
	count int
	max   float64
}

func newQuantileEstimator(percentiles ...float64) *quantileEstimator {
	marks := make([]*pSquareMark, len(percentiles))
	for i, p := range percentiles {
		marks[i] = newPSquareMark(p)
	}
	return &quantileEstimator{marks: marks, max: -math.MaxFloat64}
}

func (e *quantileEstimator) Update(x float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.count++
	e.sum += x
	if x > e.max {
		e.max = x
	}
	for _, mk := range e.marks {
		mk.update(x)
	}
}

func (e *quantileEstimator) Quantile(i int) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.marks) {
		return 0
	}
	return e.marks[i].quantile()
}

// pSquareMark is a single P² marker set tracking one target quantile.
type pSquareMark struct {
	p          float64
	height     [5]float64
	pos        [5]int
	desiredPos [5]float64
	step       [5]float64
	seeded     bool
	count      int
	seedBuf    [5]float64
}

func newPSquareMark(p float64) *pSquareMark {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return &pSquareMark{p: p, step: [5]float64{0, p / 2, p, (1 + p) / 2, 1}}
}

func (m *pSquareMark) update(x float64) {
	m.count++
	if m.count <= 5 {
		m.seedBuf[m.count-1] = x
		if m.count == 5 {
			m.seed()
		}
		return
	}

	k := 0
	switch {
	case x < m.height[0]:
		m.height[0] = x
	case x >= m.height[4]:
		m.height[4] = x
		k = 3
	default:
		for k = 0; k < 4; k++ {
			if m.height[k] <= x && x < m.height[k+1] {
				break
			}
		}
	}

	for i := k + 1; i < 5; i++ {
		m.pos[i]++
	}
	for i := 0; i < 5; i++ {
		m.desiredPos[i] += m.step[i]
	}

	for i := 1; i < 4; i++ {
		d := m.desiredPos[i] - float64(m.pos[i])
		if (d >= 1 && m.pos[i+1]-m.pos[i] > 1) || (d <= -1 && m.pos[i-1]-m.pos[i] < -1) {
			sign := 1
			if d < 0 {
				sign = -1
			}
			adjusted := m.parabolic(i, sign)
			if m.height[i-1] < adjusted && adjusted < m.height[i+1] {
				m.height[i] = adjusted
			} else {
				m.height[i] = m.linear(i, sign)
			}
			m.pos[i] += sign
		}
	}
}

func (m *pSquareMark) seed() {
	buf := m.seedBuf
	for i := 1; i < 5; i++ {
		key := buf[i]
		j := i - 1
		for j >= 0 && buf[j] > key {
			buf[j+1] = buf[j]
			j--
		}
		buf[j+1] = key
	}
	for i := 0; i < 5; i++ {
		m.height[i] = buf[i]
		m.pos[i] = i
	}
	m.desiredPos = [5]float64{0, 2 * m.p, 4 * m.p, 2 + 2*m.p, 4}
	m.seeded = true
}

func (m *pSquareMark) parabolic(i, d int) float64 {
	df := float64(d)
	ni, niPrev, niNext := float64(m.pos[i]), float64(m.pos[i-1]), float64(m.pos[i+1])
	t1 := df / (niNext - niPrev)
	t2 := (ni - niPrev + df) * (m.height[i+1] - m.height[i]) / (niNext - ni)
	t3 := (niNext - ni - df) * (m.height[i] - m.height[i-1]) / (ni - niPrev)
	return m.height[i] + t1*(t2+t3)
}

func (m *pSquareMark) linear(i, d int) float64 {
	if d == 1 {
		return m.height[i] + (m.height[i+1]-m.height[i])/float64(m.pos[i+1]-m.pos[i])
	}
	return m.height[i] - (m.height[i]-m.height[i-1])/float64(m.pos[i]-m.pos[i-1])
}

func (m *pSquareMark) quantile() float64 {
	if m.count == 0 {
		return 0
	}
	if m.count < 5 {
		sorted := append([]float64(nil), m.seedBuf[:m.count]...)
		for i := 1; i < len(sorted); i++ {
			key := sorted[i]
			j := i - 1
			for j >= 0 && sorted[j] > key {
				sorted[j+1] = sorted[j]
				j--
			}
			sorted[j+1] = key
		}
		idx := int(float64(m.count-1) * m.p)
		if idx >= len(sorted) {
			idx = len(sorted) - 1
		}
		return sorted[idx]
	}
	return m.height[2]
}

// recentRing is a fixed-capacity, overwrite-oldest circular buffer over any
// ordered type, grounded on catrate/ring.go's ringBuffer[E constraints.Ordered]
// mask-based indexing - here without that file's sorted Insert/Search, since
// a diagnostic recency window only ever appends at the write end and reads
// back in arrival order.
type recentRing[E constraints.Ordered] struct {
	mu   sync.Mutex
	buf  []E
	r, w uint
}

func newRecentRing[E constraints.Ordered](capacity int) *recentRing[E] {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic("actor: recentRing: capacity must be a power of 2")
	}
	return &recentRing[E]{buf: make([]E, capacity)}
}

func (x *recentRing[E]) mask(v uint) uint { return v & (uint(len(x.buf)) - 1) }

// Push appends value, discarding the oldest sample if the ring is full.
func (x *recentRing[E]) Push(value E) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if int(x.w-x.r) == len(x.buf) {
		x.r++
	}
	x.buf[x.mask(x.w)] = value
	x.w++
}

// Snapshot returns a copy of the currently retained samples, oldest first.
func (x *recentRing[E]) Snapshot() []E {
	x.mu.Lock()
	defer x.mu.Unlock()
	n := int(x.w - x.r)
	out := make([]E, n)
	for i := 0; i < n; i++ {
		out[i] = x.buf[x.mask(x.r+uint(i))]
	}
	return out
}
