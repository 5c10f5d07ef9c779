package actor

import (
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultLogger_IsUsableAndLevelGated(t *testing.T) {
	l := NewDefaultLogger()
	require.NotNil(t, l)
	// Below the configured level, Debug's builder is nil - this must never
	// panic, matching stumpy/logiface's nil-builder-is-a-no-op contract.
	l.Debug().Str("k", "v").Log("should be filtered out")
	l.Info().Str("k", "v").Log("should pass through")
}

func TestSetLogger_ReplacesProcessWideDefault(t *testing.T) {
	original := getDefaultLogger()
	t.Cleanup(func() { SetLogger(original) })

	custom := stumpy.L.New(
		stumpy.L.WithStumpy(),
		stumpy.L.WithLevel(logiface.LevelEmergency),
	)
	SetLogger(custom)
	assert.Same(t, custom, getDefaultLogger())
}

func TestResolveSchedulerOptions_DefaultsToProcessWideLogger(t *testing.T) {
	cfg := resolveSchedulerOptions(nil)
	assert.Same(t, getDefaultLogger(), cfg.logger)
}
