package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/events"
	"storefront/internal/httpserver"
	"storefront/internal/logging"
	cartrepo "storefront/internal/repository/cart"
	categoryrepo "storefront/internal/repository/category"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	reviewrepo "storefront/internal/repository/review"
	wishlistrepo "storefront/internal/repository/wishlist"
	cartsvc "storefront/internal/service/cart"
	categorysvc "storefront/internal/service/category"
	checkoutsvc "storefront/internal/service/checkout"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
	reviewsvc "storefront/internal/service/review"
	wishlistsvc "storefront/internal/service/wishlist"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, envLoaded := config.Load()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("cmd", "api"))
	logger.Debug("config loaded", zap.Bool("dotenv", envLoaded))

	pricing, err := cartsvc.NewPricing(cfg.ShippingFeeCents, cfg.TaxRate)
	if err != nil {
		logger.Fatal("invalid pricing config", zap.Error(err))
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	carts, wishlists := sessionRepositories(ctx, cfg, logger)

	publisher := events.Publisher(events.NopPublisher{})
	if cfg.AMQPURL != "" {
		amqpPub, err := events.DialAMQP(cfg.AMQPURL, cfg.OrderExchange, logger)
		if err != nil {
			logger.Fatal("connect to amqp", zap.Error(err))
		}
		publisher = amqpPub
	}
	defer publisher.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	productService := productsvc.New(productRepo)
	categoryService := categorysvc.New(categoryrepo.NewPostgres(dbpool))
	cartService := cartsvc.New(carts, productRepo, pricing, logger)
	orderService := ordersvc.New(orderrepo.NewPostgres(dbpool, logger), logger)
	checkoutService := checkoutsvc.New(cartService, orderService, publisher, cfg.OrderTimeout, cfg.CartTTL, logger)
	wishlistService := wishlistsvc.New(wishlists, productRepo, logger)
	reviewService := reviewsvc.New(reviewrepo.NewPostgres(dbpool, logger), logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		ProductSvc:  productService,
		CategorySvc: categoryService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		OrderSvc:    orderService,
		WishlistSvc: wishlistService,
		ReviewSvc:   reviewService,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

// sessionRepositories keeps session carts and wishlists in Redis when
// REDIS_ADDR is set and in process memory otherwise.
func sessionRepositories(ctx context.Context, cfg config.Config, logger *zap.Logger) (cartrepo.Repository, wishlistrepo.Repository) {
	if cfg.RedisAddr == "" {
		logger.Info("session store: memory", zap.Duration("cart_ttl", cfg.CartTTL), zap.Duration("wishlist_ttl", cfg.WishlistTTL))
		return cartrepo.NewMemory(cfg.CartTTL), wishlistrepo.NewMemory(cfg.WishlistTTL)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal("connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	logger.Info("session store: redis", zap.String("addr", cfg.RedisAddr), zap.Duration("cart_ttl", cfg.CartTTL), zap.Duration("wishlist_ttl", cfg.WishlistTTL))
	return cartrepo.NewRedis(client, cfg.CartTTL), wishlistrepo.NewRedis(client, cfg.WishlistTTL)
}
