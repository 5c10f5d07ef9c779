package actor

import "sync"

// processTable is the reader-biased PID -> PCB map: a read-mostly lock,
// writers only during spawn/exit. PCBs are never removed from it on exit -
// only their state transitions to Exited - so that lookups against a dead
// PID still resolve to a stub rather than silently behaving as "unknown,"
// matching the lifecycle rule that dead PCBs retain the Exited state for
// lookup-then-fail.
type processTable struct {
	mu   sync.RWMutex
	pcbs map[ProcessID]*PCB
}

func newProcessTable() *processTable {
	return &processTable{pcbs: make(map[ProcessID]*PCB)}
}

func (t *processTable) insert(pcb *PCB) {
	t.mu.Lock()
	t.pcbs[pcb.PID] = pcb
	t.mu.Unlock()
}

func (t *processTable) lookup(pid ProcessID) (*PCB, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	pcb, ok := t.pcbs[pid]
	return pcb, ok
}

// count returns the number of PCBs ever inserted, live or exited - used
// only by diagnostics, not by the scheduler's active-actor accounting
// (which tracks live actors separately via an atomic counter, since this
// map only grows).
func (t *processTable) count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.pcbs)
}
