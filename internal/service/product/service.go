package product

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
	"github.com/google/uuid"
)

var ErrInvalidPriceRange = errors.New("min price must not exceed max price")

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns active products matching filter.
func (s *Service) List(ctx context.Context, filter productrepo.ListFilter) ([]domain.Product, error) {
	if filter.MinPriceCents != nil && filter.MaxPriceCents != nil && *filter.MinPriceCents > *filter.MaxPriceCents {
		return nil, ErrInvalidPriceRange
	}
	filter.Sort = strings.ToLower(strings.TrimSpace(filter.Sort))
	if filter.CategoryID != "" {
		if _, err := uuid.Parse(filter.CategoryID); err != nil {
			return []domain.Product{}, nil
		}
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return s.List(ctx, productrepo.ListFilter{CategoryID: categoryID})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}
