package domain

// CartLineItem is one product row in a session cart.
type CartLineItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Image      string `json:"image,omitempty"`
	Quantity   int    `json:"quantity"`
}

// LineTotalCents is price times quantity for the line.
func (l CartLineItem) LineTotalCents() int64 {
	return l.PriceCents * int64(l.Quantity)
}
