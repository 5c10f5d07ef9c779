package actor

import "sync"

// Registry is a concurrent name<->PID map with a PID-indexed reverse view,
// grounded on eventloop's registry.go (there: promise-ID bookkeeping with a
// ring-buffer scavenger; here: process names, with eager cleanup instead of
// weak-pointer GC, since a PCB's lifetime is explicitly managed by the
// scheduler rather than left to the garbage collector). Reader-biased:
// writes only happen on register/unregister/cleanup.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]ProcessID
	byPID   map[ProcessID]map[string]struct{}
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]ProcessID),
		byPID:  make(map[ProcessID]map[string]struct{}),
	}
}

// Register binds name to pid. It fails with ErrNameTaken if name is
// already bound to any PID, including pid itself - registering the same
// name twice, even for the same pid, fails on the second call.
func (r *Registry) Register(name string, pid ProcessID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[name]; taken {
		return ErrNameTaken
	}
	r.byName[name] = pid
	names, ok := r.byPID[pid]
	if !ok {
		names = make(map[string]struct{})
		r.byPID[pid] = names
	}
	names[name] = struct{}{}
	return nil
}

// Whereis returns the PID bound to name, or NoPID if unbound. O(1)
// amortized.
func (r *Registry) Whereis(name string) ProcessID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// Unregister removes name's binding, if any. A no-op if name isn't bound.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisterLocked(name)
}

func (r *Registry) unregisterLocked(name string) {
	pid, ok := r.byName[name]
	if !ok {
		return
	}
	delete(r.byName, name)
	if names := r.byPID[pid]; names != nil {
		delete(names, name)
		if len(names) == 0 {
			delete(r.byPID, pid)
		}
	}
}

// CleanupProcess unregisters every name currently bound to pid. It is
// O(k) in the number of names bound to pid, invoked during exit processing.
// After it returns, Whereis for any of pid's former names returns NoPID.
func (r *Registry) CleanupProcess(pid ProcessID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := r.byPID[pid]
	for name := range names {
		delete(r.byName, name)
	}
	delete(r.byPID, pid)
}

// Snapshot returns a point-in-time copy of every registered name as an
// (unordered) map, for diagnostic tooling, grounded on eventloop registry's
// scavenge-for-diagnostics shape but simplified to an eager copy (no
// weak-pointer GC applies here).
func (r *Registry) Snapshot() map[string]ProcessID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]ProcessID, len(r.byName))
	for name, pid := range r.byName {
		out[name] = pid
	}
	return out
}

// ListNames returns every name currently bound to pid, for diagnostic
// tooling that wants the reverse view without walking the whole Snapshot.
func (r *Registry) ListNames(pid ProcessID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := r.byPID[pid]
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	return out
}
