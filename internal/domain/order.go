package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ShippingAddress is the delivery destination captured at checkout.
type ShippingAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
}

// PaymentMethod keeps only the non-sensitive parts of the card.
type PaymentMethod struct {
	CardholderName string `json:"cardholder_name"`
	CardLast4      string `json:"card_last4"`
	ExpiryDate     string `json:"expiry_date"`
}

type OrderItem struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// OrderRequest is the finalized cart snapshot handed to the order store.
type OrderRequest struct {
	SessionID       string          `json:"session_id"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	SubtotalCents   int64           `json:"subtotal_cents"`
	ShippingCents   int64           `json:"shipping_cents"`
	TaxCents        int64           `json:"tax_cents"`
	TotalCents      int64           `json:"total_cents"`
}

type Order struct {
	ID              string          `json:"id"`
	SessionID       string          `json:"-"`
	Status          OrderStatus     `json:"status"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	SubtotalCents   int64           `json:"subtotal_cents"`
	ShippingCents   int64           `json:"shipping_cents"`
	TaxCents        int64           `json:"tax_cents"`
	TotalCents      int64           `json:"total_cents"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
