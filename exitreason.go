package actor

import "fmt"

// ExitKind discriminates the cases of ExitReason. It also doubles as the
// wire discriminant byte used when an exit reason is encoded into an exit
// signal message payload (see message.go), pinning one of the open
// questions: discriminant 0=Normal, 1=Error, 2=Killed, 3=Linked.
type ExitKind uint8

const (
	ExitNormal ExitKind = iota
	ExitError
	ExitKilled
	ExitLinked
)

// ExitReason is the tagged union describing why a process terminated.
type ExitReason struct {
	Kind ExitKind

	// Message carries the error text when Kind == ExitError.
	Message string

	// ExiterPID and Cause carry the nested crash when Kind == ExitLinked:
	// the PID of the process whose non-normal exit caused this one, and
	// that process's own ExitReason.
	ExiterPID ProcessID
	Cause     *ExitReason
}

// Normal is the reason for a clean, successful return.
func Normal() ExitReason { return ExitReason{Kind: ExitNormal} }

// Errorf builds an Error exit reason.
func Errorf(format string, args ...any) ExitReason {
	return ExitReason{Kind: ExitError, Message: fmt.Sprintf(format, args...)}
}

// Killed is the reason recorded when an actor sets its own exit reason to
// Killed - this runtime models kill as a self-inflicted transition; there
// is no asynchronous abort of a running coroutine.
func Killed() ExitReason { return ExitReason{Kind: ExitKilled} }

// Linked wraps a peer's exit as the cause of this process's own exit.
func Linked(exiter ProcessID, cause ExitReason) ExitReason {
	return ExitReason{Kind: ExitLinked, ExiterPID: exiter, Cause: &cause}
}

// IsNormal reports whether the reason is a clean exit — only the outermost
// Kind matters for propagation decisions.
func (r ExitReason) IsNormal() bool {
	return r.Kind == ExitNormal
}

// String renders a human-readable description, recursing through Linked
// causes.
func (r ExitReason) String() string {
	switch r.Kind {
	case ExitNormal:
		return "normal"
	case ExitError:
		return fmt.Sprintf("error(%s)", r.Message)
	case ExitKilled:
		return "killed"
	case ExitLinked:
		cause := "?"
		if r.Cause != nil {
			cause = r.Cause.String()
		}
		return fmt.Sprintf("linked(%d, %s)", r.ExiterPID, cause)
	default:
		return "unknown"
	}
}
