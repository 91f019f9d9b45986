package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Pricing turns a cart subtotal into shipping, tax and grand total.
type Pricing struct {
	ShippingFeeCents int64
	TaxRate          decimal.Decimal
}

// DefaultPricing is a flat $10 shipping fee and 10% tax.
func DefaultPricing() Pricing {
	return Pricing{ShippingFeeCents: 1000, TaxRate: decimal.RequireFromString("0.10")}
}

// NewPricing parses a decimal tax rate such as "0.10".
func NewPricing(shippingFeeCents int64, taxRate string) (Pricing, error) {
	rate, err := decimal.NewFromString(taxRate)
	if err != nil {
		return Pricing{}, fmt.Errorf("parse tax rate %q: %w", taxRate, err)
	}
	if rate.IsNegative() || shippingFeeCents < 0 {
		return Pricing{}, fmt.Errorf("pricing must not be negative (fee=%d rate=%s)", shippingFeeCents, taxRate)
	}
	return Pricing{ShippingFeeCents: shippingFeeCents, TaxRate: rate}, nil
}

type Totals struct {
	TotalItems    int   `json:"total_items"`
	SubtotalCents int64 `json:"subtotal_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TaxCents      int64 `json:"tax_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// Totals derives every total from the current lines of s.
func (p Pricing) Totals(s *Store) Totals {
	subtotal := s.Subtotal()
	var shipping int64
	if subtotal > 0 {
		shipping = p.ShippingFeeCents
	}
	tax := decimal.NewFromInt(subtotal).Mul(p.TaxRate).Round(0).IntPart()
	return Totals{
		TotalItems:    s.TotalItems(),
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		TaxCents:      tax,
		TotalCents:    subtotal + shipping + tax,
	}
}

// CentsToAmount renders cents as a decimal currency amount (1999 -> 19.99).
func CentsToAmount(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}
