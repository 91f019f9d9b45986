package domain

import "time"

// WishlistItem is one saved product in a session wishlist.
type WishlistItem struct {
	ProductID string    `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}
