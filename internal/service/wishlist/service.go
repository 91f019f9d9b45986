package wishlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"
	wishlistrepo "storefront/internal/repository/wishlist"
	"storefront/internal/sessionlock"
	"go.uber.org/zap"
)

var ErrMissingProduct = errors.New("product id required")

type productReader interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Entry is a saved product joined with its current catalog record.
type Entry struct {
	domain.WishlistItem
	Product domain.Product `json:"product"`
}

// Service manages session wishlists: saved product ids, newest first.
type Service struct {
	repo     wishlistrepo.Repository
	products productReader
	logger   *zap.Logger
	locks    *sessionlock.Keyed
	nowFunc  func() time.Time
}

func New(repo wishlistrepo.Repository, products productReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		products: products,
		logger:   logger,
		locks:    sessionlock.New(),
		nowFunc:  time.Now,
	}
}

// List returns the wishlist newest first. Products that left the catalog are skipped.
func (s *Service) List(ctx context.Context, sessionID string) ([]Entry, error) {
	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		p, err := s.products.GetByID(ctx, item.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{WishlistItem: item, Product: *p})
	}
	return entries, nil
}

// Add saves productID; saving the same product twice fails with ErrAlreadyExists.
func (s *Service) Add(ctx context.Context, sessionID, productID string) (*Entry, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrMissingProduct
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	if indexOf(items, p.ID) >= 0 {
		return nil, domain.ErrAlreadyExists
	}
	item := domain.WishlistItem{ProductID: p.ID, AddedAt: s.nowFunc().UTC()}
	items = append([]domain.WishlistItem{item}, items...)
	if err := s.repo.Save(ctx, sessionID, items); err != nil {
		return nil, fmt.Errorf("save wishlist: %w", err)
	}
	s.logger.Debug("wishlist: add", zap.String("session_id", sessionID), zap.String("product_id", p.ID))
	return &Entry{WishlistItem: item, Product: *p}, nil
}

// Remove drops productID; an absent product is a no-op.
func (s *Service) Remove(ctx context.Context, sessionID, productID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load wishlist: %w", err)
	}
	i := indexOf(items, productID)
	if i < 0 {
		return nil
	}
	items = append(items[:i], items[i+1:]...)
	if err := s.repo.Save(ctx, sessionID, items); err != nil {
		return fmt.Errorf("save wishlist: %w", err)
	}
	return nil
}

func (s *Service) Contains(ctx context.Context, sessionID, productID string) (bool, error) {
	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("load wishlist: %w", err)
	}
	return indexOf(items, productID) >= 0, nil
}

func indexOf(items []domain.WishlistItem, productID string) int {
	for i, item := range items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
