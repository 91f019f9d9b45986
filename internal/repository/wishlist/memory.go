package wishlist

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain"
)

type memoryEntry struct {
	items     []domain.WishlistItem
	expiresAt time.Time
}

type memoryRepo struct {
	mu        sync.Mutex
	lists     map[string]memoryEntry
	ttl       time.Duration
	lastSweep time.Time
	nowFunc   func() time.Time
}

// NewMemory keeps wishlists in process memory; ttl works as for carts.
func NewMemory(ttl time.Duration) Repository {
	return &memoryRepo{
		lists:   make(map[string]memoryEntry),
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

func (r *memoryRepo) Load(_ context.Context, sessionID string) ([]domain.WishlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.lists[sessionID]
	if !ok {
		return []domain.WishlistItem{}, nil
	}
	if r.ttl > 0 && r.nowFunc().After(entry.expiresAt) {
		delete(r.lists, sessionID)
		return []domain.WishlistItem{}, nil
	}
	return append([]domain.WishlistItem{}, entry.items...), nil
}

func (r *memoryRepo) Save(_ context.Context, sessionID string, items []domain.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.nowFunc()
	if len(items) == 0 {
		delete(r.lists, sessionID)
		return nil
	}
	entry := memoryEntry{items: append([]domain.WishlistItem{}, items...)}
	if r.ttl > 0 {
		entry.expiresAt = now.Add(r.ttl)
		if now.Sub(r.lastSweep) >= r.ttl {
			r.lastSweep = now
			for id, e := range r.lists {
				if now.After(e.expiresAt) {
					delete(r.lists, id)
				}
			}
		}
	}
	r.lists[sessionID] = entry
	return nil
}
