package pipeline

import "sync"

// idLocks serializes stage transitions per video identifier. Transitions on
// distinct identifiers proceed independently; transitions on the same
// identifier take turns around the whole read-modify-invoke-write sequence.
//
// Entries are never removed: the map is bounded by the number of distinct
// identifiers this process has touched, which is small next to the artifacts
// those identifiers reference.
type idLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newIDLocks() *idLocks {
	return &idLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire blocks until the lock for id is held and returns the release func.
func (l *idLocks) acquire(id string) func() {
	l.mu.Lock()
	lock, ok := l.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[id] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
