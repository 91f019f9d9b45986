package cart

import (
	"errors"
	"math"

	"storefront/internal/domain"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrMissingProduct  = errors.New("product id required")
)

// Store holds the line items of a single session cart. It is not safe for
// concurrent use; Service serializes access per session.
type Store struct {
	lines []domain.CartLineItem
}

// NewStore returns a Store seeded with lines, merging duplicate product ids and
// dropping lines that cannot satisfy the quantity >= 1 invariant.
func NewStore(lines ...domain.CartLineItem) *Store {
	s := &Store{}
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		_ = s.AddItem(l, l.Quantity)
	}
	return s
}

// AddItem merges quantity into the line with the same product id, or appends a new line.
func (s *Store) AddItem(item domain.CartLineItem, quantity int) error {
	if item.ID == "" {
		return ErrMissingProduct
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if item.PriceCents < 0 {
		return ErrInvalidPrice
	}
	if i := s.indexOf(item.ID); i >= 0 {
		if s.lines[i].Quantity > math.MaxInt-quantity {
			return ErrInvalidQuantity
		}
		s.lines[i].Quantity += quantity
		return nil
	}
	item.Quantity = quantity
	s.lines = append(s.lines, item)
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity below one
// removes the line; an unknown id is ignored.
func (s *Store) UpdateQuantity(id string, quantity int) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	if quantity < 1 {
		s.removeAt(i)
		return
	}
	s.lines[i].Quantity = quantity
}

// RemoveItem deletes the line for id; absent ids are a no-op.
func (s *Store) RemoveItem(id string) {
	if i := s.indexOf(id); i >= 0 {
		s.removeAt(i)
	}
}

func (s *Store) Clear() {
	s.lines = nil
}

// Item returns the line for id.
func (s *Store) Item(id string) (domain.CartLineItem, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.lines[i], true
	}
	return domain.CartLineItem{}, false
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []domain.CartLineItem {
	out := make([]domain.CartLineItem, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Len() int {
	return len(s.lines)
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// Subtotal is the sum of price times quantity in cents.
func (s *Store) Subtotal() int64 {
	var total int64
	for _, l := range s.lines {
		total += l.LineTotalCents()
	}
	return total
}

// TotalPrice is an alias of Subtotal.
func (s *Store) TotalPrice() int64 {
	return s.Subtotal()
}

func (s *Store) indexOf(id string) int {
	for i, l := range s.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int) {
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	if len(s.lines) == 0 {
		s.lines = nil
	}
}
