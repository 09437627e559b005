package graph

import (
	"sync"
)

// AttributeLock serialises the commits that create attributes or attach them
// to owners, so two transactions cannot persist the same attribute twice.
type AttributeLock struct {
	mu sync.Mutex
}

// Acquire blocks until the lock is free. The returned guard is the proof of
// ownership that commit calls require.
func (l *AttributeLock) Acquire() *AttributeGuard {
	l.mu.Lock()
	return &AttributeGuard{lock: l, held: true}
}

// AttributeGuard must be released by the goroutine that acquired it.
type AttributeGuard struct {
	lock *AttributeLock
	held bool
}

// Held is false for a nil or released guard.
func (g *AttributeGuard) Held() bool {
	return g != nil && g.held
}

func (g *AttributeGuard) Release() {
	if !g.Held() {
		return
	}
	g.held = false
	g.lock.mu.Unlock()
}
