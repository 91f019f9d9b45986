package order

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderID = "5f0c6a1e-9d1b-4c1a-8c53-0b7a2e0f4d11"

type stubRepo struct {
	orders    map[string]*domain.Order
	createErr error
	created   []domain.OrderRequest
	cancelErr error
}

func newStubRepo(orders ...*domain.Order) *stubRepo {
	r := &stubRepo{orders: map[string]*domain.Order{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *stubRepo) Create(_ context.Context, req domain.OrderRequest) (*domain.Order, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, req)
	return &domain.Order{ID: orderID, SessionID: req.SessionID, Status: domain.OrderStatusPending, Items: req.Items}, nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubRepo) ListBySession(_ context.Context, sessionID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.SessionID == sessionID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubRepo) Cancel(_ context.Context, id string) (*domain.Order, error) {
	if r.cancelErr != nil {
		return nil, r.cancelErr
	}
	o := r.orders[id]
	o.Status = domain.OrderStatusCancelled
	cp := *o
	return &cp, nil
}

func TestPlace(t *testing.T) {
	repo := newStubRepo()
	svc := New(repo, nil)

	order, err := svc.Place(context.Background(), domain.OrderRequest{
		SessionID: "s1",
		Items:     []domain.OrderItem{{ProductID: "p1", Quantity: 1, UnitPriceCents: 100}},
	})
	require.NoError(t, err)
	assert.Equal(t, orderID, order.ID)
	assert.Len(t, repo.created, 1)
}

func TestPlaceRejectsEmptyOrBadLines(t *testing.T) {
	repo := newStubRepo()
	svc := New(repo, nil)

	_, err := svc.Place(context.Background(), domain.OrderRequest{SessionID: "s1"})
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = svc.Place(context.Background(), domain.OrderRequest{
		SessionID: "s1",
		Items:     []domain.OrderItem{{ProductID: "p1", Quantity: 0, UnitPriceCents: 100}},
	})
	assert.ErrorIs(t, err, ErrInvalidOrder)
	assert.Empty(t, repo.created)
}

func TestPlaceWrapsStockError(t *testing.T) {
	repo := newStubRepo()
	repo.createErr = domain.ErrInsufficientStock
	svc := New(repo, nil)

	_, err := svc.Place(context.Background(), domain.OrderRequest{
		Items: []domain.OrderItem{{ProductID: "p1", Quantity: 3}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestGetChecksOwnership(t *testing.T) {
	svc := New(newStubRepo(&domain.Order{ID: orderID, SessionID: "s1", Status: domain.OrderStatusPending}), nil)

	got, err := svc.Get(context.Background(), "s1", orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, got.ID)

	_, err = svc.Get(context.Background(), "s2", orderID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), "s1", "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel(t *testing.T) {
	repo := newStubRepo(&domain.Order{ID: orderID, SessionID: "s1", Status: domain.OrderStatusPending})
	svc := New(repo, nil)

	cancelled, err := svc.Cancel(context.Background(), "s1", orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)

	_, err = svc.Cancel(context.Background(), "s1", orderID)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
}

func TestCancelOnlyFromPending(t *testing.T) {
	for _, status := range []domain.OrderStatus{
		domain.OrderStatusProcessing,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
		domain.OrderStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			svc := New(newStubRepo(&domain.Order{ID: orderID, SessionID: "s1", Status: status}), nil)
			_, err := svc.Cancel(context.Background(), "s1", orderID)
			assert.ErrorIs(t, err, ErrOrderNotCancellable)
		})
	}
}

func TestCancelRaceReportsNotCancellable(t *testing.T) {
	repo := newStubRepo(&domain.Order{ID: orderID, SessionID: "s1", Status: domain.OrderStatusPending})
	repo.cancelErr = domain.ErrNotFound
	svc := New(repo, nil)

	_, err := svc.Cancel(context.Background(), "s1", orderID)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
}

func TestCancelWrapsRepoError(t *testing.T) {
	boom := errors.New("boom")
	repo := newStubRepo(&domain.Order{ID: orderID, SessionID: "s1", Status: domain.OrderStatusPending})
	repo.cancelErr = boom
	svc := New(repo, nil)

	_, err := svc.Cancel(context.Background(), "s1", orderID)
	assert.ErrorIs(t, err, boom)
}

func TestListFiltersBySession(t *testing.T) {
	svc := New(newStubRepo(
		&domain.Order{ID: orderID, SessionID: "s1"},
		&domain.Order{ID: "other", SessionID: "s2"},
	), nil)

	list, err := svc.List(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, orderID, list[0].ID)
}
