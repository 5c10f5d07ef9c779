package actor

import (
	"sync/atomic"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is this runtime's structured logger type: a logiface.Logger bound
// to stumpy's zero-allocation JSON Event, the same pairing the
// logiface + logiface-stumpy packages wire together upstream. Generalizing
// over the Event type the way logiface already does means this module
// never needs its own hand-rolled Logger interface, unlike eventloop's
// package-level hand-rolled Logger.
type Logger = logiface.Logger[*stumpy.Event]

// defaultLogger is process-wide and swappable via SetLogger, mirroring
// eventloop/logging.go's globalLogger pattern but delegating field/level
// handling entirely to logiface.
var defaultLoggerPtr atomic.Pointer[Logger]

func init() {
	defaultLoggerPtr.Store(NewDefaultLogger())
}

// NewDefaultLogger builds the stock logger: stumpy's JSON backend writing
// to stderr at Informational level and above.
func NewDefaultLogger() *Logger {
	return stumpy.L.New(
		stumpy.L.WithStumpy(),
		stumpy.L.WithLevel(logiface.LevelInformational),
	)
}

// SetLogger replaces the process-wide default logger used by the
// scheduler when no WithLogger option was supplied to NewScheduler.
func SetLogger(l *Logger) {
	defaultLoggerPtr.Store(l)
}

func getDefaultLogger() *Logger {
	return defaultLoggerPtr.Load()
}
