package actor

import "time"

// schedulerOptions holds configuration resolved from SchedulerOption
// values, grounded on eventloop/options.go's loopOptions shape.
type schedulerOptions struct {
	numSchedulers  int
	highPrioBuffer int
	logger         *Logger
	idleLogWindow  time.Duration
	idleLogBurst   int
}

// SchedulerOption configures a Scheduler at construction time.
type SchedulerOption interface {
	applyScheduler(*schedulerOptions)
}

type schedulerOptionFunc func(*schedulerOptions)

func (f schedulerOptionFunc) applyScheduler(opts *schedulerOptions) { f(opts) }

// WithNumSchedulers sets the worker pool size. 0 (the default) means "use
// runtime.NumCPU()", matching rt_init_actor's own convention.
func WithNumSchedulers(n int) SchedulerOption {
	return schedulerOptionFunc(func(opts *schedulerOptions) {
		opts.numSchedulers = n
	})
}

// WithHighPriorityBuffer sets the buffer depth of the dedicated
// high-priority spawn channel each worker checks first every iteration.
func WithHighPriorityBuffer(n int) SchedulerOption {
	return schedulerOptionFunc(func(opts *schedulerOptions) {
		if n > 0 {
			opts.highPrioBuffer = n
		}
	})
}

// WithLogger overrides the scheduler's structured logger. If not supplied,
// NewScheduler uses the process-wide default (see logging.go).
func WithLogger(l *Logger) SchedulerOption {
	return schedulerOptionFunc(func(opts *schedulerOptions) {
		opts.logger = l
	})
}

// WithIdleLogRate bounds how often a worker may log its idle-backoff
// transition, via the wired catrate limiter (window, max events per
// window). All workers share one limiter, so the default allows at most 1
// idle log line per second across the whole scheduler.
func WithIdleLogRate(window time.Duration, burst int) SchedulerOption {
	return schedulerOptionFunc(func(opts *schedulerOptions) {
		opts.idleLogWindow = window
		opts.idleLogBurst = burst
	})
}

func resolveSchedulerOptions(opts []SchedulerOption) *schedulerOptions {
	cfg := &schedulerOptions{
		highPrioBuffer: 1024,
		idleLogWindow:  time.Second,
		idleLogBurst:   1,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyScheduler(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = getDefaultLogger()
	}
	return cfg
}
