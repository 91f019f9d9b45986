package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/service/cart"
	"go.uber.org/zap"
)

var (
	ErrSubmissionInFlight = errors.New("checkout already in progress")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderFailed        = errors.New("order could not be placed")
)

const (
	DefaultOrderTimeout = 15 * time.Second
	DefaultStatusTTL    = 24 * time.Hour

	// postOrderTimeout bounds the cart cleanup and event publish that follow a
	// committed order; they run even when the request has gone away.
	postOrderTimeout = 5 * time.Second
)

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateConfirmed  State = "confirmed"
)

// Status is the checkout state of one session.
type Status struct {
	State   State  `json:"state"`
	OrderID string `json:"order_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type cartSource interface {
	Get(ctx context.Context, sessionID string) (*cart.View, error)
	RemoveOrdered(ctx context.Context, sessionID string, items []domain.OrderItem) error
}

// OrderPlacer turns a finalized cart snapshot into a stored order.
type OrderPlacer interface {
	Place(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
}

type orderPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
}

// Service validates checkout forms and submits orders, allowing at most one
// submission in flight per session.
type Service struct {
	carts     cartSource
	orders    OrderPlacer
	publisher orderPublisher
	timeout   time.Duration
	logger    *zap.Logger

	mu        sync.Mutex
	sessions  map[string]sessionStatus
	statusTTL time.Duration
	lastSweep time.Time
	nowFunc   func() time.Time
}

type sessionStatus struct {
	Status
	expiresAt time.Time
}

// New builds the checkout service. Settled statuses (confirmed, or editing
// after a failure) are forgotten statusTTL after they were recorded.
func New(carts cartSource, orders OrderPlacer, publisher orderPublisher, timeout, statusTTL time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultOrderTimeout
	}
	if statusTTL <= 0 {
		statusTTL = DefaultStatusTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		carts:     carts,
		orders:    orders,
		publisher: publisher,
		timeout:   timeout,
		logger:    logger,
		sessions:  make(map[string]sessionStatus),
		statusTTL: statusTTL,
		nowFunc:   time.Now,
	}
}

// Status reports the checkout state of sessionID; unknown sessions are editing.
func (s *Service) Status(sessionID string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[sessionID]
	if !ok || s.expired(st) {
		return Status{State: StateEditing}
	}
	return st.Status
}

// Submit validates form and places an order for the session's cart. On success
// the ordered lines leave the cart and the session moves to confirmed; on any
// failure the session returns to editing with the cart untouched.
func (s *Service) Submit(ctx context.Context, sessionID string, form Form) (*domain.Order, error) {
	if errs := Validate(form); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	if !s.begin(sessionID) {
		return nil, ErrSubmissionInFlight
	}

	view, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		s.finish(sessionID, Status{State: StateEditing, Error: ErrOrderFailed.Error()})
		return nil, fmt.Errorf("%w: %w", ErrOrderFailed, err)
	}
	if len(view.Items) == 0 {
		s.finish(sessionID, Status{State: StateEditing, Error: ErrEmptyCart.Error()})
		return nil, ErrEmptyCart
	}

	req := buildOrderRequest(sessionID, form, view)
	placeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	order, err := s.orders.Place(placeCtx, req)
	cancel()
	if err != nil {
		s.logger.Warn("checkout: place order failed", zap.String("session_id", sessionID), zap.Error(err))
		s.finish(sessionID, Status{State: StateEditing, Error: ErrOrderFailed.Error()})
		return nil, fmt.Errorf("%w: %w", ErrOrderFailed, err)
	}

	// The order is committed; cleanup outlives the request.
	postCtx, cancelPost := context.WithTimeout(context.WithoutCancel(ctx), postOrderTimeout)
	defer cancelPost()

	if err := s.carts.RemoveOrdered(postCtx, sessionID, req.Items); err != nil {
		s.logger.Error("checkout: remove ordered items from cart", zap.String("session_id", sessionID), zap.String("order_id", order.ID), zap.Error(err))
	}
	s.finish(sessionID, Status{State: StateConfirmed, OrderID: order.ID})
	s.logger.Info("checkout: order placed",
		zap.String("session_id", sessionID),
		zap.String("order_id", order.ID),
		zap.Int64("total_cents", order.TotalCents))

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(postCtx, order); err != nil {
			s.logger.Warn("checkout: publish order.placed", zap.String("order_id", order.ID), zap.Error(err))
		}
	}
	return order, nil
}

func (s *Service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	if s.sessions[sessionID].State == StateSubmitting {
		return false
	}
	s.sessions[sessionID] = sessionStatus{Status: Status{State: StateSubmitting}}
	return true
}

func (s *Service) finish(sessionID string, st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st == (Status{State: StateEditing}) {
		delete(s.sessions, sessionID)
		return
	}
	s.sessions[sessionID] = sessionStatus{Status: st, expiresAt: s.nowFunc().Add(s.statusTTL)}
}

// expired reports whether a settled status has outlived statusTTL. A
// submission in flight never expires.
func (s *Service) expired(st sessionStatus) bool {
	return st.State != StateSubmitting && !st.expiresAt.IsZero() && s.nowFunc().After(st.expiresAt)
}

// sweepLocked drops expired statuses, at most once per statusTTL. s.mu must be held.
func (s *Service) sweepLocked() {
	now := s.nowFunc()
	if now.Sub(s.lastSweep) < s.statusTTL {
		return
	}
	s.lastSweep = now
	for id, st := range s.sessions {
		if s.expired(st) {
			delete(s.sessions, id)
		}
	}
}

func buildOrderRequest(sessionID string, form Form, view *cart.View) domain.OrderRequest {
	items := make([]domain.OrderItem, 0, len(view.Items))
	for _, line := range view.Items {
		items = append(items, domain.OrderItem{
			ProductID:      line.ID,
			Name:           line.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: line.PriceCents,
		})
	}
	return domain.OrderRequest{
		SessionID: sessionID,
		Email:     strings.TrimSpace(form.Email),
		Phone:     strings.TrimSpace(form.Phone),
		Items:     items,
		ShippingAddress: domain.ShippingAddress{
			FirstName: strings.TrimSpace(form.FirstName),
			LastName:  strings.TrimSpace(form.LastName),
			Address:   strings.TrimSpace(form.Address),
			City:      strings.TrimSpace(form.City),
			State:     strings.TrimSpace(form.State),
			ZipCode:   strings.TrimSpace(form.ZipCode),
			Country:   strings.TrimSpace(form.Country),
		},
		PaymentMethod: domain.PaymentMethod{
			CardholderName: strings.TrimSpace(form.CardName),
			CardLast4:      form.CardLast4(),
			ExpiryDate:     strings.TrimSpace(form.ExpiryDate),
		},
		SubtotalCents: view.SubtotalCents,
		ShippingCents: view.ShippingCents,
		TaxCents:      view.TaxCents,
		TotalCents:    view.TotalCents,
	}
}
