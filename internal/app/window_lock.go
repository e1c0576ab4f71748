package app

import (
	"sync"

	"github.com/example/tabmagnet/internal/core/tabs"
)

// windowLocks serializes the fetch/decide/mutate sequence per window.
// Entries are dropped once no goroutine holds or waits for them.
type windowLocks struct {
	mu    sync.Mutex
	locks map[tabs.WindowID]*windowLock
}

type windowLock struct {
	mu   sync.Mutex
	refs int
}

func newWindowLocks() *windowLocks {
	return &windowLocks{locks: make(map[tabs.WindowID]*windowLock)}
}

// lock acquires the window's mutex and returns its release function.
func (l *windowLocks) lock(windowID tabs.WindowID) func() {
	l.mu.Lock()
	wl, ok := l.locks[windowID]
	if !ok {
		wl = &windowLock{}
		l.locks[windowID] = wl
	}
	wl.refs++
	l.mu.Unlock()

	wl.mu.Lock()
	return func() {
		wl.mu.Unlock()
		l.mu.Lock()
		wl.refs--
		if wl.refs == 0 {
			delete(l.locks, windowID)
		}
		l.mu.Unlock()
	}
}

func (l *windowLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
