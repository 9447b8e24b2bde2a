package ledger

import "sync"

// employeeLocks hands out one mutex per employee. A cascade is a strict
// sequential dependency within one employee's chain, so concurrent cascades
// for the same employee would race; different employees stay fully parallel.
//
// The lock is held across every batch commit of a cascade: releasing it
// between batches would expose interleaved partial views of the chain.
type employeeLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newEmployeeLocks() *employeeLocks {
	return &employeeLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the employee's mutex and returns the unlock function.
func (l *employeeLocks) Lock(employeeID string) func() {
	l.mu.Lock()
	m, ok := l.locks[employeeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[employeeID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
