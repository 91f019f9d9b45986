package main

import (
	"context"
	"fmt"
	"os"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logging"
	categoryrepo "storefront/internal/repository/category"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/seed"
	"go.uber.org/zap"
)

func main() {
	cfg, _ := config.Load()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("cmd", "seed"))

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := seed.Apply(ctx, categoryrepo.NewPostgres(pool), productrepo.NewPostgres(pool, logger), logger); err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}
}
