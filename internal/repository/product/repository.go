package product

import (
	"context"

	"storefront/internal/domain"
)

// Sort orders accepted by List.
const (
	SortName      = "name"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// ListFilter narrows a product listing. Zero values mean "no filter".
type ListFilter struct {
	CategoryID    string
	Search        string
	MinPriceCents *int64
	MaxPriceCents *int64
	Sort          string
	Limit         int
	Offset        int
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
