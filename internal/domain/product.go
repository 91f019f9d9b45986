package domain

import "time"

// Product is the catalog record the cart and checkout read from.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	PriceCents    int64     `json:"price_cents"`
	ImageURL      string    `json:"image_url,omitempty"`
	CategoryID    *string   `json:"category_id,omitempty"`
	StockQuantity int       `json:"stock_quantity"`
	Rating        float64   `json:"rating"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
