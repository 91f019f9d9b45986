package httpserver

import (
	"time"

	"storefront/internal/domain"
	"storefront/internal/service/cart"
	"storefront/internal/service/wishlist"
)

type productResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	PriceCents    int64     `json:"price_cents"`
	ImageURL      string    `json:"image_url,omitempty"`
	CategoryID    *string   `json:"category_id,omitempty"`
	StockQuantity int       `json:"stock_quantity"`
	Rating        float64   `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         cart.CentsToAmount(p.PriceCents),
		PriceCents:    p.PriceCents,
		ImageURL:      p.ImageURL,
		CategoryID:    p.CategoryID,
		StockQuantity: p.StockQuantity,
		Rating:        p.Rating,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductList(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

type cartItemResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	PriceCents     int64   `json:"price_cents"`
	Image          string  `json:"image,omitempty"`
	Quantity       int     `json:"quantity"`
	LineTotal      float64 `json:"line_total"`
	LineTotalCents int64   `json:"line_total_cents"`
}

type cartResponse struct {
	SessionID string             `json:"session_id"`
	Items     []cartItemResponse `json:"items"`
	Subtotal  float64            `json:"subtotal"`
	Shipping  float64            `json:"shipping"`
	Tax       float64            `json:"tax"`
	Total     float64            `json:"total"`
	cart.Totals
}

func toCartResponse(v *cart.View) cartResponse {
	items := make([]cartItemResponse, 0, len(v.Items))
	for _, line := range v.Items {
		items = append(items, cartItemResponse{
			ID:             line.ID,
			Name:           line.Name,
			Price:          cart.CentsToAmount(line.PriceCents),
			PriceCents:     line.PriceCents,
			Image:          line.Image,
			Quantity:       line.Quantity,
			LineTotal:      cart.CentsToAmount(line.LineTotalCents()),
			LineTotalCents: line.LineTotalCents(),
		})
	}
	return cartResponse{
		SessionID: v.SessionID,
		Items:     items,
		Subtotal:  cart.CentsToAmount(v.SubtotalCents),
		Shipping:  cart.CentsToAmount(v.ShippingCents),
		Tax:       cart.CentsToAmount(v.TaxCents),
		Total:     cart.CentsToAmount(v.TotalCents),
		Totals:    v.Totals,
	}
}

type wishlistEntryResponse struct {
	ProductID string          `json:"product_id"`
	AddedAt   time.Time       `json:"added_at"`
	Product   productResponse `json:"product"`
}

func toWishlistEntry(e wishlist.Entry) wishlistEntryResponse {
	return wishlistEntryResponse{
		ProductID: e.ProductID,
		AddedAt:   e.AddedAt,
		Product:   toProductResponse(e.Product),
	}
}
