package wishlist

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists session wishlists. Load returns an empty slice for an
// unknown session.
type Repository interface {
	Load(ctx context.Context, sessionID string) ([]domain.WishlistItem, error)
	Save(ctx context.Context, sessionID string, items []domain.WishlistItem) error
}
