package httpserver

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain"
	"storefront/internal/logging"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/service/cart"
	"storefront/internal/service/checkout"
	reviewsvc "storefront/internal/service/review"
	"storefront/internal/service/wishlist"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ProductService interface {
	List(ctx context.Context, filter productrepo.ListFilter) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Subcategories(ctx context.Context, id string) ([]domain.Category, error)
}

type CartService interface {
	Get(ctx context.Context, sessionID string) (*cart.View, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*cart.View, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*cart.View, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*cart.View, error)
	Clear(ctx context.Context, sessionID string) error
}

type CheckoutService interface {
	Submit(ctx context.Context, sessionID string, form checkout.Form) (*domain.Order, error)
	Status(sessionID string) checkout.Status
}

type OrderService interface {
	Get(ctx context.Context, sessionID, id string) (*domain.Order, error)
	List(ctx context.Context, sessionID string) ([]domain.Order, error)
	Cancel(ctx context.Context, sessionID, id string) (*domain.Order, error)
}

type WishlistService interface {
	List(ctx context.Context, sessionID string) ([]wishlist.Entry, error)
	Add(ctx context.Context, sessionID, productID string) (*wishlist.Entry, error)
	Remove(ctx context.Context, sessionID, productID string) error
	Contains(ctx context.Context, sessionID, productID string) (bool, error)
}

type ReviewService interface {
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Create(ctx context.Context, sessionID, productID string, in reviewsvc.Input) (*domain.Review, error)
	Update(ctx context.Context, sessionID, id string, in reviewsvc.Input) (*domain.Review, error)
	Delete(ctx context.Context, sessionID, id string) error
}

// Deps carries the services the API routes delegate to.
type Deps struct {
	ProductSvc  ProductService
	CategorySvc CategoryService
	CartSvc     CartService
	CheckoutSvc CheckoutService
	OrderSvc    OrderService
	WishlistSvc WishlistService
	ReviewSvc   ReviewService
}

func (d Deps) validate() error {
	switch {
	case d.ProductSvc == nil:
		return errors.New("product service is required")
	case d.CategorySvc == nil:
		return errors.New("category service is required")
	case d.CartSvc == nil:
		return errors.New("cart service is required")
	case d.CheckoutSvc == nil:
		return errors.New("checkout service is required")
	case d.OrderSvc == nil:
		return errors.New("order service is required")
	case d.WishlistSvc == nil:
		return errors.New("wishlist service is required")
	case d.ReviewSvc == nil:
		return errors.New("review service is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(logging.Middleware(logger), gin.Recovery())
	if len(allowedOrigins) > 0 {
		router.Use(cors.New(corsConfig(allowedOrigins)))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}
	api := router.Group("/api")

	products := api.Group("/products")
	products.GET("", h.listProducts)
	products.GET("/category/:categoryId", h.listProductsByCategory)
	products.GET("/:id", h.getProduct)

	categories := api.Group("/categories")
	categories.GET("", h.listCategories)
	categories.GET("/:id", h.getCategory)
	categories.GET("/:id/subcategories", h.listSubcategories)

	api.GET("/reviews/product/:productId", h.listProductReviews)

	session := api.Group("", sessionMiddleware())

	cartRoutes := session.Group("/cart")
	cartRoutes.GET("", h.getCart)
	cartRoutes.POST("", h.addCartItem)
	cartRoutes.PUT("/:productId", h.updateCartItem)
	cartRoutes.DELETE("/:productId", h.removeCartItem)
	cartRoutes.DELETE("", h.clearCart)

	session.POST("/checkout", h.submitCheckout)
	session.GET("/checkout/status", h.checkoutStatus)

	orders := session.Group("/orders")
	orders.GET("", h.listOrders)
	orders.GET("/:id", h.getOrder)
	orders.PUT("/:id/cancel", h.cancelOrder)

	wishlistRoutes := session.Group("/wishlist")
	wishlistRoutes.GET("", h.listWishlist)
	wishlistRoutes.POST("", h.addWishlistItem)
	wishlistRoutes.GET("/check/:productId", h.checkWishlistItem)
	wishlistRoutes.DELETE("/:productId", h.removeWishlistItem)

	reviews := session.Group("/reviews")
	reviews.POST("", h.createReview)
	reviews.PUT("/:id", h.updateReview)
	reviews.DELETE("/:id", h.deleteReview)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", sessionHeader},
		ExposeHeaders: []string{sessionHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

type handlers struct {
	deps   Deps
	logger *zap.Logger
}
