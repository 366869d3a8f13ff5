package service

import "sync"

// sessionLocks serialises commands per session.
type sessionLocks struct {
	mu   sync.Mutex
	byID map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{byID: make(map[string]*sessionLock)}
}

// lock acquires the lock for id and returns its release func.
func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	sl, ok := l.byID[id]
	if !ok {
		sl = &sessionLock{}
		l.byID[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 && l.byID[id] == sl {
			delete(l.byID, id)
		}
		l.mu.Unlock()
	}
}
