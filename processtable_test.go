package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessTable_InsertAndLookup(t *testing.T) {
	t.Parallel()

	tbl := newProcessTable()
	pcb := newPCB(ProcessID(1), PriorityNormal)
	tbl.insert(pcb)

	got, ok := tbl.lookup(ProcessID(1))
	assert.True(t, ok)
	assert.Same(t, pcb, got)

	_, ok = tbl.lookup(ProcessID(2))
	assert.False(t, ok)
}

func TestProcessTable_RetainsExitedPCBs(t *testing.T) {
	t.Parallel()

	tbl := newProcessTable()
	pcb := newPCB(ProcessID(1), PriorityNormal)
	tbl.insert(pcb)
	pcb.state.Store(StateExited)

	got, ok := tbl.lookup(ProcessID(1))
	assert.True(t, ok)
	assert.Equal(t, StateExited, got.State())
}

func TestProcessTable_Count(t *testing.T) {
	t.Parallel()

	tbl := newProcessTable()
	assert.Equal(t, 0, tbl.count())
	tbl.insert(newPCB(ProcessID(1), PriorityNormal))
	tbl.insert(newPCB(ProcessID(2), PriorityNormal))
	assert.Equal(t, 2, tbl.count())
}
