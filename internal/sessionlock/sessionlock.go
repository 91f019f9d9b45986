// Package sessionlock serializes read-modify-write cycles on per-session state.
package sessionlock

import "sync"

type refLock struct {
	sync.Mutex
	refs int
}

// Keyed serializes work per key and forgets keys nobody holds.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

func New() *Keyed {
	return &Keyed{locks: make(map[string]*refLock)}
}

// Lock blocks until key is free and returns the matching unlock func.
func (k *Keyed) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// held reports how many keys are currently tracked.
func (k *Keyed) held() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
