package cart

import (
	"math"
	"testing"

	"storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, priceCents int64) domain.CartLineItem {
	return domain.CartLineItem{ID: id, Name: "Product " + id, PriceCents: priceCents, Image: "https://img/" + id}
}

func TestStore_AddItemMergesSameProduct(t *testing.T) {
	s := NewStore()
	for _, q := range []int{1, 3, 2} {
		require.NoError(t, s.AddItem(item("a", 1000), q))
	}

	require.Equal(t, 1, s.Len())
	got, ok := s.Item("a")
	require.True(t, ok)
	assert.Equal(t, 6, got.Quantity)
}

func TestStore_AddItemAppendsInOrder(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(item("b", 500), 1))
	require.NoError(t, s.AddItem(item("a", 1000), 1))
	require.NoError(t, s.AddItem(item("b", 500), 1))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
}

func TestStore_AddItemRejectsInvalidInput(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.AddItem(item("a", 100), 0), ErrInvalidQuantity)
	assert.ErrorIs(t, s.AddItem(item("a", 100), -2), ErrInvalidQuantity)
	assert.ErrorIs(t, s.AddItem(item("a", -1), 1), ErrInvalidPrice)
	assert.ErrorIs(t, s.AddItem(item("", 100), 1), ErrMissingProduct)
	assert.Equal(t, 0, s.Len())
}

func TestStore_AddItemRejectsQuantityOverflow(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(item("a", 100), 1))

	assert.ErrorIs(t, s.AddItem(item("a", 100), math.MaxInt), ErrInvalidQuantity)

	got, ok := s.Item("a")
	require.True(t, ok)
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, 1, s.TotalItems())
	assert.Equal(t, int64(100), s.Subtotal())
}

func TestStore_TotalsFollowLines(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.TotalItems())
	assert.Equal(t, int64(0), s.Subtotal())

	require.NoError(t, s.AddItem(item("a", 1000), 2))
	require.NoError(t, s.AddItem(item("b", 500), 1))
	assert.Equal(t, 3, s.TotalItems())
	assert.Equal(t, int64(2500), s.Subtotal())
	assert.Equal(t, s.Subtotal(), s.TotalPrice())

	s.UpdateQuantity("a", 5)
	assert.Equal(t, 6, s.TotalItems())
	assert.Equal(t, int64(5500), s.Subtotal())

	s.RemoveItem("b")
	assert.Equal(t, 5, s.TotalItems())
	assert.Equal(t, int64(5000), s.Subtotal())
}

func TestStore_UpdateQuantityBelowOneRemoves(t *testing.T) {
	for _, q := range []int{0, -1} {
		s := NewStore()
		require.NoError(t, s.AddItem(item("a", 1000), 2))
		require.NoError(t, s.AddItem(item("b", 500), 1))

		s.UpdateQuantity("a", q)
		s.UpdateQuantity("a", q)

		_, ok := s.Item("a")
		assert.False(t, ok, "quantity %d should remove the line", q)
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, 1, s.TotalItems())
	}
}

func TestStore_UnknownIDsAreNoOps(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(item("a", 1000), 2))
	before := s.Items()

	s.RemoveItem("missing")
	s.UpdateQuantity("missing", 7)

	assert.Equal(t, before, s.Items())
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(item("a", 1000), 1))

	items := s.Items()
	items[0].Quantity = 42

	got, _ := s.Item("a")
	assert.Equal(t, 1, got.Quantity)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(item("a", 1000), 1))
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, int64(0), s.Subtotal())
}

func TestNewStore_MergesAndDropsInvalidLines(t *testing.T) {
	a := item("a", 1000)
	a.Quantity = 1
	a2 := item("a", 1000)
	a2.Quantity = 2
	zero := item("z", 100)

	s := NewStore(a, zero, a2)

	require.Equal(t, 1, s.Len())
	got, _ := s.Item("a")
	assert.Equal(t, 3, got.Quantity)
}
