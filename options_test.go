package actor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveSchedulerOptions_Defaults(t *testing.T) {
	cfg := resolveSchedulerOptions(nil)
	assert.Equal(t, 0, cfg.numSchedulers)
	assert.Equal(t, 1024, cfg.highPrioBuffer)
	assert.Equal(t, time.Second, cfg.idleLogWindow)
	assert.Equal(t, 1, cfg.idleLogBurst)
	assert.NotNil(t, cfg.logger)
}

func TestWithNumSchedulers_Overrides(t *testing.T) {
	cfg := resolveSchedulerOptions([]SchedulerOption{WithNumSchedulers(8)})
	assert.Equal(t, 8, cfg.numSchedulers)
}

func TestWithHighPriorityBuffer_IgnoresNonPositive(t *testing.T) {
	cfg := resolveSchedulerOptions([]SchedulerOption{WithHighPriorityBuffer(0)})
	assert.Equal(t, 1024, cfg.highPrioBuffer)

	cfg = resolveSchedulerOptions([]SchedulerOption{WithHighPriorityBuffer(64)})
	assert.Equal(t, 64, cfg.highPrioBuffer)
}

func TestWithLogger_Overrides(t *testing.T) {
	custom := NewDefaultLogger()
	cfg := resolveSchedulerOptions([]SchedulerOption{WithLogger(custom)})
	assert.Same(t, custom, cfg.logger)
}

func TestWithIdleLogRate_Overrides(t *testing.T) {
	cfg := resolveSchedulerOptions([]SchedulerOption{WithIdleLogRate(5 * time.Second, 3)})
	assert.Equal(t, 5*time.Second, cfg.idleLogWindow)
	assert.Equal(t, 3, cfg.idleLogBurst)
}

func TestResolveSchedulerOptions_NilOptionIsSkipped(t *testing.T) {
	assert.NotPanics(t, func() {
		resolveSchedulerOptions([]SchedulerOption{nil, WithNumSchedulers(2), nil})
	})
}
