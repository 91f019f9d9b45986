package events

import (
	"context"
	"time"

	"storefront/internal/domain"
)

const RoutingKeyOrderPlaced = "order.placed"

// OrderPlaced is the message body published after an order is stored.
type OrderPlaced struct {
	OrderID    string             `json:"order_id"`
	Email      string             `json:"email"`
	Items      []domain.OrderItem `json:"items"`
	TotalCents int64              `json:"total_cents"`
	PlacedAt   time.Time          `json:"placed_at"`
}

func NewOrderPlaced(order *domain.Order) OrderPlaced {
	placedAt := order.CreatedAt
	if placedAt.IsZero() {
		placedAt = time.Now().UTC()
	}
	return OrderPlaced{
		OrderID:    order.ID,
		Email:      order.Email,
		Items:      order.Items,
		TotalCents: order.TotalCents,
		PlacedAt:   placedAt,
	}
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, *domain.Order) error { return nil }

func (NopPublisher) Close() error { return nil }
