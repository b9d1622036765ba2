package service

import "sync"

// sessionLocks hands out one mutex per session id. Entries are dropped once
// no request holds or waits for them.
type sessionLocks struct {
	mu   sync.Mutex
	held map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{held: make(map[string]*sessionLock)}
}

// lock blocks until id is free and returns the matching unlock.
func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	entry, ok := l.held[id]
	if !ok {
		entry = &sessionLock{}
		l.held[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.held, id)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}
