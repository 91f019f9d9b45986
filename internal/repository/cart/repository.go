package cart

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists the line items of a session cart between requests.
// Load returns an empty slice for an unknown session.
type Repository interface {
	Load(ctx context.Context, sessionID string) ([]domain.CartLineItem, error)
	Save(ctx context.Context, sessionID string, lines []domain.CartLineItem) error
	Delete(ctx context.Context, sessionID string) error
}
