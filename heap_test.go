package actor

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeap_BumpAllocReturnsDistinctZeroedBuffers(t *testing.T) {
	t.Parallel()

	h := NewHeapSize(256)
	a := h.Alloc(16, 8)
	b := h.Alloc(16, 8)

	require.Len(t, a, 16)
	require.Len(t, b, 16)
	for _, b := range a {
		assert.Zero(t, b)
	}

	// writing into a must not be visible through b.
	a[0] = 0xFF
	assert.Zero(t, b[0])
}

func TestHeap_GrowsANewPageOnExhaustion(t *testing.T) {
	t.Parallel()

	h := NewHeapSize(64)
	first := h.Alloc(48, 8)
	assert.Len(t, first, 48)

	// too big to fit in the rest of the first page; should trigger a new page.
	second := h.Alloc(48, 8)
	assert.Len(t, second, 48)
	assert.GreaterOrEqual(t, len(h.pages), 2)
}

func TestHeap_AllocExceedingMaxPagesPanics(t *testing.T) {
	t.Parallel()

	h := NewHeapSize(64)
	h.maxPages = 1
	h.Alloc(48, 8) // consumes the one allowed page

	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*HeapExhaustedError)
		assert.True(t, ok)
	}()
	h.Alloc(48, 8)
}

func TestDefaultHeap_IsASingleton(t *testing.T) {
	t.Parallel()
	assert.Same(t, DefaultHeap(), DefaultHeap())
}

func TestAlignOffset_AccountsForBytesAlreadyConsumed(t *testing.T) {
	t.Parallel()

	// page size 8, a prior Alloc(3, 1) leaves a 5-byte tail; the next
	// aligned (align 4) offset from page start 4 is 1 byte into that tail.
	cur := make([]byte, 5)
	assert.Equal(t, 1, alignOffset(cur, 4))
}

func TestHeap_AllocRespectsAlignmentAfterUnalignedRemainder(t *testing.T) {
	t.Parallel()

	h := NewHeapSize(64)
	h.Alloc(3, 1) // leaves a remainder that is not already a multiple of 4

	buf := h.Alloc(5, 4)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	assert.Zero(t, addr%4, "buffer start must be 4-byte aligned")
}
