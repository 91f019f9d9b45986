package cart

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
	"storefront/internal/sessionlock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProducts struct {
	products map[string]domain.Product
	err      error
}

func (s *stubProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type failingRepo struct {
	loadErr error
	saveErr error
}

func (r *failingRepo) Load(_ context.Context, _ string) ([]domain.CartLineItem, error) {
	return nil, r.loadErr
}

func (r *failingRepo) Save(_ context.Context, _ string, _ []domain.CartLineItem) error {
	return r.saveErr
}

func (r *failingRepo) Delete(_ context.Context, _ string) error {
	return nil
}

func newTestService() *Service {
	products := &stubProducts{products: map[string]domain.Product{
		"a": {ID: "a", Name: "Mug", PriceCents: 1000, ImageURL: "https://img/a", StockQuantity: 10, IsActive: true},
		"b": {ID: "b", Name: "Tee", PriceCents: 500, StockQuantity: 3, IsActive: true},
		"x": {ID: "x", Name: "Retired", PriceCents: 100, StockQuantity: 3, IsActive: false},
	}}
	return New(cartrepo.NewMemory(0), products, DefaultPricing(), nil)
}

func TestServiceAddItemEndToEndTotals(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", "a", 2)
	require.NoError(t, err)
	view, err := svc.AddItem(ctx, "s1", "b", 1)
	require.NoError(t, err)

	require.Len(t, view.Items, 2)
	assert.Equal(t, "Mug", view.Items[0].Name)
	assert.Equal(t, "https://img/a", view.Items[0].Image)
	assert.Equal(t, Totals{TotalItems: 3, SubtotalCents: 2500, ShippingCents: 1000, TaxCents: 250, TotalCents: 3750}, view.Totals)

	again, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, again.TotalItems)
}

func TestServiceAddItemValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name      string
		productID string
		quantity  int
		want      error
	}{
		{"missing id", " ", 1, ErrMissingProduct},
		{"zero quantity", "a", 0, ErrInvalidQuantity},
		{"unknown product", "nope", 1, domain.ErrNotFound},
		{"inactive product", "x", 1, ErrProductUnavailable},
		{"over stock", "b", 4, domain.ErrInsufficientStock},
		{"huge quantity", "a", math.MaxInt, domain.ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, "s1", tc.productID, tc.quantity)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestServiceAddItemStockCountsExistingLine(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", "b", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", "b", 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	view, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, view.TotalItems, "failed add must not change the cart")
}

func TestServiceAddItemHugeQuantityOnExistingLine(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", "a", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", "a", math.MaxInt)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	view, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
	assert.Equal(t, 1, view.TotalItems)
	assert.Equal(t, int64(1000), view.SubtotalCents)
}

func TestServiceUpdateQuantity(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "s1", "a", 1)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(ctx, "s1", "a", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.TotalItems)

	_, err = svc.UpdateQuantity(ctx, "s1", "a", 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	view, err = svc.UpdateQuantity(ctx, "s1", "missing", 2)
	require.NoError(t, err)
	assert.Equal(t, 4, view.TotalItems, "update on a missing id is a no-op")

	for i := 0; i < 2; i++ {
		view, err = svc.UpdateQuantity(ctx, "s1", "a", 0)
		require.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.Zero(t, view.TotalCents)
	}
}

func TestServiceRemoveAndClear(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "s1", "a", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", "b", 1)
	require.NoError(t, err)

	view, err := svc.RemoveItem(ctx, "s1", "a")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	view, err = svc.RemoveItem(ctx, "s1", "a")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1, "second remove is a no-op")

	require.NoError(t, svc.Clear(ctx, "s1"))
	view, err = svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestServiceRemoveOrderedKeepsNewerLines(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "s1", "a", 3)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", "b", 1)
	require.NoError(t, err)

	ordered := []domain.OrderItem{
		{ProductID: "a", Quantity: 2},
		{ProductID: "b", Quantity: 1},
		{ProductID: "gone", Quantity: 1},
	}
	require.NoError(t, svc.RemoveOrdered(ctx, "s1", ordered))

	view, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "a", view.Items[0].ID)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestServiceRemoveOrderedDropsLoweredLines(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "s1", "a", 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveOrdered(ctx, "s1", []domain.OrderItem{{ProductID: "a", Quantity: 2}}))

	view, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "s1", "a", 1)
	require.NoError(t, err)

	view, err := svc.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestServiceConcurrentAddsMerge(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, "s1", "a", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 10, view.Items[0].Quantity)
}

func TestServiceRepoErrorsAreWrapped(t *testing.T) {
	boom := errors.New("boom")
	products := &stubProducts{products: map[string]domain.Product{
		"a": {ID: "a", PriceCents: 100, StockQuantity: 5, IsActive: true},
	}}

	svc := &Service{repo: &failingRepo{loadErr: boom}, products: products, pricing: DefaultPricing(), logger: zap.NewNop(), locks: sessionlock.New()}
	_, err := svc.Get(context.Background(), "s1")
	assert.ErrorIs(t, err, boom)

	svc.repo = &failingRepo{saveErr: boom}
	_, err = svc.AddItem(context.Background(), "s1", "a", 1)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.RemoveOrdered(context.Background(), "s1", nil), boom)
}
