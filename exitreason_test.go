package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitReason_Constructors(t *testing.T) {
	t.Parallel()

	assert.True(t, Normal().IsNormal())
	assert.Equal(t, "normal", Normal().String())

	err := Errorf("boom %d", 42)
	assert.False(t, err.IsNormal())
	assert.Equal(t, ExitError, err.Kind)
	assert.Equal(t, "error(boom 42)", err.String())

	killed := Killed()
	assert.Equal(t, ExitKilled, killed.Kind)
	assert.Equal(t, "killed", killed.String())
}

func TestExitReason_LinkedNesting(t *testing.T) {
	t.Parallel()

	cause := Errorf("child crashed")
	linked := Linked(ProcessID(7), cause)
	assert.Equal(t, ExitLinked, linked.Kind)
	assert.False(t, linked.IsNormal())
	assert.Equal(t, "linked(7, error(child crashed))", linked.String())
}
