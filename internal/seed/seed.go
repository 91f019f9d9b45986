package seed

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"go.uber.org/zap"
)

type CategoryWriter interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type ProductWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type categorySeed struct {
	Name        string
	Description string
	Parent      string
}

type productSeed struct {
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	Stock       int
	Rating      float64
	Category    string
}

var categories = []categorySeed{
	{Name: "Electronics", Description: "Electronic devices and accessories"},
	{Name: "Audio", Description: "Headphones and speakers", Parent: "Electronics"},
	{Name: "Wearables", Description: "Watches and fitness trackers", Parent: "Electronics"},
	{Name: "Clothing", Description: "Fashion items and accessories"},
	{Name: "Home & Kitchen", Description: "Home goods and kitchen appliances"},
	{Name: "Beauty", Description: "Beauty and personal care products"},
}

var products = []productSeed{
	{
		Name:        "Wireless Headphones",
		Description: "High-quality wireless headphones with noise cancellation",
		PriceCents:  19999,
		ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500",
		Stock:       50,
		Rating:      4.6,
		Category:    "Audio",
	},
	{
		Name:        "Smart Watch",
		Description: "Fitness tracking smartwatch with heart rate monitoring",
		PriceCents:  29999,
		ImageURL:    "https://images.unsplash.com/photo-1546868871-7041f2a55e12?w=500",
		Stock:       30,
		Rating:      4.4,
		Category:    "Wearables",
	},
	{
		Name:        "Classic T-Shirt",
		Description: "Comfortable cotton t-shirt in various colors",
		PriceCents:  2499,
		ImageURL:    "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500",
		Stock:       100,
		Rating:      4.2,
		Category:    "Clothing",
	},
	{
		Name:        "Coffee Maker",
		Description: "Programmable coffee maker with thermal carafe",
		PriceCents:  7999,
		ImageURL:    "https://images.unsplash.com/photo-1517661931470-2a9d7831f7e3?w=500",
		Stock:       25,
		Rating:      4.5,
		Category:    "Home & Kitchen",
	},
	{
		Name:        "Face Moisturizer",
		Description: "Hydrating face moisturizer for all skin types",
		PriceCents:  2999,
		ImageURL:    "https://images.unsplash.com/photo-1596462502278-27bfdc403348?w=500",
		Stock:       75,
		Rating:      4.3,
		Category:    "Beauty",
	},
}

// Apply upserts the demo catalog. Ids are derived from names, so running it
// again updates the same rows.
func Apply(ctx context.Context, cats CategoryWriter, prods ProductWriter, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	// parents are listed before their children
	for _, c := range categories {
		cat := domain.Category{
			ID:          domain.StableID("category", c.Name),
			Name:        c.Name,
			Description: c.Description,
		}
		if c.Parent != "" {
			parentID := domain.StableID("category", c.Parent)
			cat.ParentID = &parentID
		}
		if _, err := cats.Upsert(ctx, cat); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Name, err)
		}
	}

	for _, p := range products {
		categoryID := domain.StableID("category", p.Category)
		_, err := prods.Upsert(ctx, domain.Product{
			ID:            domain.StableID("product", p.Name),
			Name:          p.Name,
			Description:   p.Description,
			PriceCents:    p.PriceCents,
			ImageURL:      p.ImageURL,
			CategoryID:    &categoryID,
			StockQuantity: p.Stock,
			Rating:        p.Rating,
			IsActive:      true,
		})
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	logger.Info("seed applied", zap.Int("categories", len(categories)), zap.Int("products", len(products)))
	return nil
}
