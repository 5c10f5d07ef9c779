package actor

import "sync"

// DefaultPageSize is the size of each page the bump allocator carves off
// when the current page is exhausted.
const DefaultPageSize = 64 * 1024

// maxHeapPages bounds the number of pages a single actor's heap may grow
// to before Alloc aborts with a HeapExhaustedError, standing in for
// the "exhaustion of the process's address space" - a real compiled
// target would hit this via the OS; here it is a configurable ceiling so
// tests can exercise the abort path without allocating gigabytes.
const maxHeapPages = 1 << 20 // 64 KiB * 1Mi pages == 64 GiB ceiling by default

// Heap is a per-actor bump allocator over a list of fixed-size pages. It is
// owned exclusively by the actor that created it: only the owning worker
// ever calls Alloc on it. There is no explicit release operation: its pages
// are freed by the Go garbage collector once the Heap is unreachable, and an
// Exited PCB retained in the process table keeps its Heap reachable.
// Collection within a live heap is out of scope for this runtime.
type Heap struct {
	pageSize int
	maxPages int
	pages    [][]byte
	cur      []byte // remaining unused tail of the current (last) page
}

// NewHeap constructs a Heap with the default page size.
func NewHeap() *Heap {
	return NewHeapSize(DefaultPageSize)
}

// NewHeapSize constructs a Heap with a custom page size, rounded up to a
// word-aligned minimum so every alignment request up to word size can be
// satisfied from a fresh page.
func NewHeapSize(pageSize int) *Heap {
	if pageSize < 64 {
		pageSize = 64
	}
	pageSize = (pageSize + 7) &^ 7
	return &Heap{pageSize: pageSize, maxPages: maxHeapPages}
}

// Alloc returns a zeroed slice of size bytes, aligned to align (which must
// be a power of two no larger than 8, the largest word size this runtime
// supports). It is O(1) amortized: the common case is a pointer bump within
// the current page; a new page is only allocated on exhaustion.
//
// Alloc panics with *HeapExhaustedError if growing the heap would exceed
// maxPages. This is treated as an abort, not a recoverable error, since
// there is no sensible continuation for a compiled actor body that can't
// get memory.
func (h *Heap) Alloc(size, align int) []byte {
	if size < 0 {
		panic("actor: heap: negative size")
	}
	if align <= 0 {
		align = 1
	}
	if size == 0 {
		return h.cur[:0:0]
	}

	if buf, ok := h.tryBump(size, align); ok {
		return buf
	}

	need := size + align - 1
	pageSize := h.pageSize
	if need > pageSize {
		pageSize = (need + 7) &^ 7
	}
	if len(h.pages) >= h.maxPages {
		panic(&HeapExhaustedError{Requested: size})
	}
	page := make([]byte, pageSize)
	h.pages = append(h.pages, page)
	h.cur = page

	buf, ok := h.tryBump(size, align)
	if !ok {
		// unreachable given the sizing above, but fail loudly rather than
		// silently returning a mis-sized buffer.
		panic(&HeapExhaustedError{Requested: size})
	}
	return buf
}

// tryBump attempts to carve size bytes, aligned to align, off the front of
// the current page's remaining tail.
func (h *Heap) tryBump(size, align int) ([]byte, bool) {
	if len(h.cur) == 0 && size > 0 {
		return nil, false
	}
	off := alignOffset(h.cur, align)
	if off+size > len(h.cur) {
		return nil, false
	}
	buf := h.cur[off : off+size : off+size]
	h.cur = h.cur[off+size:]
	return buf, true
}

// alignOffset returns the number of leading bytes of buf to skip so that
// buf[off:] starts at an address divisible by align. Since Go slices don't
// expose their backing address portably without unsafe, this uses the
// slice's length as a stand-in for its position within the page: pages are
// allocated fresh (and thus start aligned for any practical word size), and
// cur is always the page's unused tail counted down from a full, aligned
// page, so len(cur) % align already gives the distance from buf[0] to the
// next aligned boundary directly.
func alignOffset(cur []byte, align int) int {
	if align <= 1 {
		return 0
	}
	return len(cur) % align
}

// defaultHeap is the process-wide fallback heap used when no actor context
// is active - e.g. during program init before the scheduler starts - so
// that non-actor code paths continue to work.
var (
	defaultHeapOnce sync.Once
	defaultHeapPtr  *Heap
)

// DefaultHeap returns the shared fallback heap for bare-thread allocation.
func DefaultHeap() *Heap {
	defaultHeapOnce.Do(func() {
		defaultHeapPtr = NewHeap()
	})
	return defaultHeapPtr
}
