package ops

import "sync"

// noteLocks serializes read-modify-write cycles per note id so that
// concurrent updates cannot interleave between the fetch and the write.
// SQLite's own locking keeps rows consistent but cannot prevent two
// callers from both reading version N and both writing N+1.
var noteLocks = &lockRegistry{locks: make(map[string]*lockEntry)}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type lockRegistry struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

// lock acquires the mutex for the given note id, creating it on first use.
// The returned function releases the mutex and drops the registry entry
// once no other caller holds or awaits it.
func (r *lockRegistry) lock(id string) func() {
	r.mu.Lock()
	entry, ok := r.locks[id]
	if !ok {
		entry = &lockEntry{}
		r.locks[id] = entry
	}
	entry.refs++
	r.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		r.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(r.locks, id)
		}
		r.mu.Unlock()
	}
}
