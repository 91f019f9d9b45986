package cart

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain"
)

type memoryEntry struct {
	lines     []domain.CartLineItem
	expiresAt time.Time
}

type memoryRepo struct {
	mu        sync.RWMutex
	carts     map[string]memoryEntry
	ttl       time.Duration
	lastSweep time.Time
	nowFunc   func() time.Time
}

// NewMemory keeps carts in process memory. Entries expire ttl after their last
// save; a zero ttl keeps them for the life of the process.
func NewMemory(ttl time.Duration) Repository {
	return &memoryRepo{
		carts:   make(map[string]memoryEntry),
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

func (r *memoryRepo) Load(_ context.Context, sessionID string) ([]domain.CartLineItem, error) {
	r.mu.RLock()
	entry, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if !ok {
		return []domain.CartLineItem{}, nil
	}
	if !entry.expiresAt.IsZero() && r.nowFunc().After(entry.expiresAt) {
		r.mu.Lock()
		delete(r.carts, sessionID)
		r.mu.Unlock()
		return []domain.CartLineItem{}, nil
	}
	out := make([]domain.CartLineItem, len(entry.lines))
	copy(out, entry.lines)
	return out, nil
}

func (r *memoryRepo) Save(_ context.Context, sessionID string, lines []domain.CartLineItem) error {
	stored := make([]domain.CartLineItem, len(lines))
	copy(stored, lines)
	now := r.nowFunc()
	entry := memoryEntry{lines: stored}
	if r.ttl > 0 {
		entry.expiresAt = now.Add(r.ttl)
	}
	r.mu.Lock()
	r.sweepLocked(now)
	r.carts[sessionID] = entry
	r.mu.Unlock()
	return nil
}

// sweepLocked drops expired carts of sessions that never came back, at most
// once per ttl. r.mu must be held for writing.
func (r *memoryRepo) sweepLocked(now time.Time) {
	if r.ttl <= 0 || now.Sub(r.lastSweep) < r.ttl {
		return
	}
	r.lastSweep = now
	for id, entry := range r.carts {
		if now.After(entry.expiresAt) {
			delete(r.carts, id)
		}
	}
}

func (r *memoryRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.carts, sessionID)
	r.mu.Unlock()
	return nil
}
