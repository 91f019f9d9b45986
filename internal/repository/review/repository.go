package review

import (
	"context"

	"storefront/internal/domain"
)

// Repository stores product reviews. Every write recomputes the product's
// average rating in the same transaction.
type Repository interface {
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Create(ctx context.Context, review domain.Review) (*domain.Review, error)
	Update(ctx context.Context, review domain.Review) (*domain.Review, error)
	Delete(ctx context.Context, sessionID, id string) error
	// HasPurchased reports whether sessionID holds a non-cancelled order containing productID.
	HasPurchased(ctx context.Context, sessionID, productID string) (bool, error)
}
