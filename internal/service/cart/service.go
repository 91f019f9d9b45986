package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
	"storefront/internal/sessionlock"
	"go.uber.org/zap"
)

var ErrProductUnavailable = errors.New("product unavailable")

type cartRepo interface {
	Load(ctx context.Context, sessionID string) ([]domain.CartLineItem, error)
	Save(ctx context.Context, sessionID string, lines []domain.CartLineItem) error
	Delete(ctx context.Context, sessionID string) error
}

type productReader interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// View is a cart as returned to callers: the lines plus totals derived from them.
type View struct {
	SessionID string                `json:"session_id"`
	Items     []domain.CartLineItem `json:"items"`
	Totals
}

// Service owns session carts: it loads a Store, applies one mutation and saves it,
// one mutation at a time per session.
type Service struct {
	repo     cartRepo
	products productReader
	pricing  Pricing
	logger   *zap.Logger
	locks    *sessionlock.Keyed
}

func New(repo cartrepo.Repository, products productReader, pricing Pricing, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		products: products,
		pricing:  pricing,
		logger:   logger,
		locks:    sessionlock.New(),
	}
}

func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(sessionID, store), nil
}

// AddItem adds quantity of productID, merging with an existing line. The
// resulting line quantity must be covered by the product's current stock.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*View, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrMissingProduct
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductUnavailable
	}

	return s.mutate(ctx, sessionID, func(store *Store) error {
		existing, _ := store.Item(product.ID)
		if quantity > product.StockQuantity-existing.Quantity {
			return domain.ErrInsufficientStock
		}
		s.logger.Debug("cart: add item",
			zap.String("session_id", sessionID),
			zap.String("product_id", product.ID),
			zap.Int("quantity", quantity))
		return store.AddItem(domain.CartLineItem{
			ID:         product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Image:      product.ImageURL,
		}, quantity)
	})
}

// UpdateQuantity sets the quantity of an existing line; a quantity below one
// removes it and an unknown product id leaves the cart unchanged.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*View, error) {
	return s.mutate(ctx, sessionID, func(store *Store) error {
		if _, ok := store.Item(productID); ok && quantity >= 1 {
			product, err := s.products.GetByID(ctx, productID)
			if err != nil {
				return err
			}
			if quantity > product.StockQuantity {
				return domain.ErrInsufficientStock
			}
		}
		store.UpdateQuantity(productID, quantity)
		return nil
	})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*View, error) {
	return s.mutate(ctx, sessionID, func(store *Store) error {
		store.RemoveItem(productID)
		return nil
	})
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.logger.Debug("cart: cleared", zap.String("session_id", sessionID))
	return nil
}

// RemoveOrdered takes the ordered quantities out of the cart. Lines added or
// raised after the order snapshot was taken keep the difference.
func (s *Service) RemoveOrdered(ctx context.Context, sessionID string, items []domain.OrderItem) error {
	_, err := s.mutate(ctx, sessionID, func(store *Store) error {
		for _, item := range items {
			line, ok := store.Item(item.ProductID)
			if !ok {
				continue
			}
			store.UpdateQuantity(item.ProductID, line.Quantity-item.Quantity)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("cart: ordered items removed", zap.String("session_id", sessionID), zap.Int("lines", len(items)))
	return nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*Store) error) (*View, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(store); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, sessionID, store.Items()); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return s.view(sessionID, store), nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*Store, error) {
	lines, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return NewStore(lines...), nil
}

func (s *Service) view(sessionID string, store *Store) *View {
	return &View{
		SessionID: sessionID,
		Items:     store.Items(),
		Totals:    s.pricing.Totals(store),
	}
}
