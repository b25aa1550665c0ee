// Package lock provides per-account mutual exclusion for operations that must
// not overlap for one account but may run freely across accounts.
package lock

import (
	"sync"
)

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyedLock hands out one non-blocking mutex per key. Entries are dropped once
// released, so the map does not grow with every account ever seen.
type KeyedLock struct {
	mu    sync.Mutex
	locks map[string]*entry
}

func NewKeyedLock() *KeyedLock {
	return &KeyedLock{locks: make(map[string]*entry)}
}

func (l *KeyedLock) acquire(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	return e
}

func (l *KeyedLock) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// Unlock releases key. Unlocking a key that is not held is a no-op.
func (l *KeyedLock) Unlock(key string) {
	l.mu.Lock()
	e, ok := l.locks[key]
	l.mu.Unlock()
	if !ok {
		return
	}
	e.mu.Unlock()
	l.release(key, e)
}

// TryLock acquires key without blocking and reports whether it did.
func (l *KeyedLock) TryLock(key string) bool {
	e := l.acquire(key)
	if e.mu.TryLock() {
		return true
	}
	l.release(key, e)
	return false
}

// Len reports how many keys are currently held.
func (l *KeyedLock) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
