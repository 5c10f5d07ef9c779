package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndWhereis(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register("worker-1", ProcessID(5)))
	assert.Equal(t, ProcessID(5), r.Whereis("worker-1"))
	assert.Equal(t, NoPID, r.Whereis("unknown"))
}

func TestRegistry_DuplicateRegisterFails(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register("name", ProcessID(1)))
	err := r.Register("name", ProcessID(1))
	assert.ErrorIs(t, err, ErrNameTaken)

	err = r.Register("name", ProcessID(2))
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestRegistry_CleanupProcessRemovesAllNames(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register("a", ProcessID(1)))
	require.NoError(t, r.Register("b", ProcessID(1)))
	require.NoError(t, r.Register("c", ProcessID(2)))

	r.CleanupProcess(ProcessID(1))

	assert.Equal(t, NoPID, r.Whereis("a"))
	assert.Equal(t, NoPID, r.Whereis("b"))
	assert.Equal(t, ProcessID(2), r.Whereis("c"))
}

func TestRegistry_UnregisterSingleName(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register("solo", ProcessID(1)))
	r.Unregister("solo")
	assert.Equal(t, NoPID, r.Whereis("solo"))
	r.Unregister("solo") // no-op
}

func TestRegistry_Snapshot(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register("x", ProcessID(1)))
	require.NoError(t, r.Register("y", ProcessID(2)))

	snap := r.Snapshot()
	assert.Equal(t, map[string]ProcessID{"x": 1, "y": 2}, snap)

	// mutating the snapshot must not affect the registry.
	snap["z"] = 3
	assert.Equal(t, NoPID, r.Whereis("z"))
}

func TestRegistry_ListNames(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register("a", ProcessID(1)))
	require.NoError(t, r.Register("b", ProcessID(1)))
	require.NoError(t, r.Register("c", ProcessID(2)))

	assert.ElementsMatch(t, []string{"a", "b"}, r.ListNames(ProcessID(1)))
	assert.ElementsMatch(t, []string{"c"}, r.ListNames(ProcessID(2)))
	assert.Empty(t, r.ListNames(ProcessID(99)))

	r.Unregister("a")
	assert.ElementsMatch(t, []string{"b"}, r.ListNames(ProcessID(1)))
}
