package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkDeque_PushPopLIFO(t *testing.T) {
	t.Parallel()

	d := newWorkDeque()
	req1 := &SpawnRequest{PCB: newPCB(1, PriorityNormal)}
	req2 := &SpawnRequest{PCB: newPCB(2, PriorityNormal)}
	d.PushBack(req1)
	d.PushBack(req2)

	got, ok := d.PopBack()
	require.True(t, ok)
	assert.Equal(t, req2, got)

	got, ok = d.PopBack()
	require.True(t, ok)
	assert.Equal(t, req1, got)

	_, ok = d.PopBack()
	assert.False(t, ok)
}

func TestWorkDeque_StealFrontTakesOldest(t *testing.T) {
	t.Parallel()

	victim := newWorkDeque()
	thief := newWorkDeque()

	req1 := &SpawnRequest{PCB: newPCB(1, PriorityNormal)}
	req2 := &SpawnRequest{PCB: newPCB(2, PriorityNormal)}
	victim.PushBack(req1)
	victim.PushBack(req2)

	stolen, ok := thief.StealFront(victim)
	require.True(t, ok)
	assert.Equal(t, req1, stolen)
	assert.Equal(t, 1, victim.Len())
}

func TestInjector_FIFO(t *testing.T) {
	t.Parallel()

	inj := newInjector()
	req1 := &SpawnRequest{PCB: newPCB(1, PriorityNormal)}
	req2 := &SpawnRequest{PCB: newPCB(2, PriorityNormal)}
	inj.Push(req1)
	inj.Push(req2)

	got, ok := inj.Pop()
	require.True(t, ok)
	assert.Equal(t, req1, got)

	got, ok = inj.Pop()
	require.True(t, ok)
	assert.Equal(t, req2, got)

	_, ok = inj.Pop()
	assert.False(t, ok)
}
