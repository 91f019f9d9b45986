package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// Create stores the order and its items and takes the ordered quantities
	// out of stock, all in one transaction.
	Create(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error)
	// Cancel moves a pending order to cancelled and puts its items back in
	// stock. It returns domain.ErrNotFound when no pending order matches.
	Cancel(ctx context.Context, id string) (*domain.Order, error)
}
