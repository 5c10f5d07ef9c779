package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoroutine_YieldsThenCompletes(t *testing.T) {
	t.Parallel()

	var steps []string
	c := newCoroutine(ProcessID(1), 10, func(y *yielder) ExitReason {
		steps = append(steps, "before yield")
		Yield()
		steps = append(steps, "after yield")
		return Normal()
	})

	r1 := c.Resume()
	assert.Equal(t, suspendYielded, r1.reason)
	assert.False(t, c.Finished())

	r2 := c.Resume()
	assert.Equal(t, suspendDone, r2.reason)
	assert.True(t, r2.exit.IsNormal())
	assert.True(t, c.Finished())

	assert.Equal(t, []string{"before yield", "after yield"}, steps)
}

func TestCoroutine_ReductionCheckForcesYield(t *testing.T) {
	t.Parallel()

	c := newCoroutine(ProcessID(2), 2, func(y *yielder) ExitReason {
		for i := 0; i < 5; i++ {
			ReductionCheck()
		}
		return Normal()
	})

	r1 := c.Resume()
	require.Equal(t, suspendYielded, r1.reason)

	c.SetReductions(10)
	r2 := c.Resume()
	require.Equal(t, suspendDone, r2.reason)
}

func TestCoroutine_PanicBecomesErrorExit(t *testing.T) {
	t.Parallel()

	c := newCoroutine(ProcessID(3), 10, func(y *yielder) ExitReason {
		panic("kaboom")
	})

	r := c.Resume()
	require.Equal(t, suspendDone, r.reason)
	assert.Equal(t, ExitError, r.exit.Kind)
	assert.Contains(t, r.exit.Message, "kaboom")
}

func TestCoroutine_ResumeAfterFinishedPanics(t *testing.T) {
	t.Parallel()

	c := newCoroutine(ProcessID(4), 10, func(y *yielder) ExitReason {
		return Normal()
	})
	c.Resume()
	assert.Panics(t, func() {
		c.Resume()
	})
}

func TestYield_OutsideCoroutinePanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		Yield()
	})
}

func TestSelf_NoLocalsReturnsNoPID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, NoPID, Self())
}
