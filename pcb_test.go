package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPCB_NewPCBDefaults(t *testing.T) {
	t.Parallel()

	p := newPCB(ProcessID(1), PriorityNormal)
	assert.Equal(t, StateReady, p.State())
	assert.False(t, p.TrapExit())
	assert.Equal(t, DefaultReductionBudget, p.reductions)
	assert.Empty(t, p.linkSnapshot())
	assert.Empty(t, p.namesSnapshot())
}

func TestPCB_LinkSetIsIdempotent(t *testing.T) {
	t.Parallel()

	p := newPCB(ProcessID(1), PriorityNormal)
	p.addLink(ProcessID(2))
	p.addLink(ProcessID(2))
	assert.True(t, p.hasLink(ProcessID(2)))
	assert.Len(t, p.linkSnapshot(), 1)

	p.removeLink(ProcessID(2))
	assert.False(t, p.hasLink(ProcessID(2)))
	p.removeLink(ProcessID(2)) // no-op, must not panic
}

func TestPCB_NamesAccumulate(t *testing.T) {
	t.Parallel()

	p := newPCB(ProcessID(1), PriorityNormal)
	p.addName("alpha")
	p.addName("beta")
	assert.ElementsMatch(t, []string{"alpha", "beta"}, p.namesSnapshot())
}

func TestPCB_TerminateCallback(t *testing.T) {
	t.Parallel()

	p := newPCB(ProcessID(1), PriorityNormal)
	var called ExitReason
	p.SetTerminate(func(r ExitReason) { called = r })
	p.terminate(Killed())
	assert.Equal(t, ExitKilled, called.Kind)
}
