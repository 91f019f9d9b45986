package domain

import "time"

// Review is a 1..5 star product review left by the session that bought it.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	SessionID string    `json:"-"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
