package order

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrOrderNotCancellable = errors.New("order cannot be cancelled")
	ErrInvalidOrder        = errors.New("order has no items")
)

type Service struct {
	repo   orderrepo.Repository
	logger *zap.Logger
}

func New(repo orderrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Place stores a finalized cart snapshot as a pending order.
func (s *Service) Place(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrInvalidOrder
	}
	for _, item := range req.Items {
		if item.Quantity < 1 || item.UnitPriceCents < 0 {
			return nil, fmt.Errorf("%w: bad line for product %s", ErrInvalidOrder, item.ProductID)
		}
	}
	order, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.logger.Info("order: placed", zap.String("order_id", order.ID), zap.Int("items", len(order.Items)))
	return order, nil
}

// Get returns the order only when it belongs to sessionID.
func (s *Service) Get(ctx context.Context, sessionID, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.SessionID != sessionID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *Service) List(ctx context.Context, sessionID string) ([]domain.Order, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

// Cancel cancels a pending order owned by sessionID.
func (s *Service) Cancel(ctx context.Context, sessionID, id string) (*domain.Order, error) {
	order, err := s.Get(ctx, sessionID, id)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPending {
		return nil, ErrOrderNotCancellable
	}
	cancelled, err := s.repo.Cancel(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		// status changed after the read above
		return nil, ErrOrderNotCancellable
	}
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	s.logger.Info("order: cancelled", zap.String("order_id", id))
	return cancelled, nil
}
