// Command storefront is a terminal front-end for the halfkg grocery store.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/imrishuroy/halfkg-storefront/internal/cart"
	"github.com/imrishuroy/halfkg-storefront/internal/catalog"
	"github.com/imrishuroy/halfkg-storefront/internal/checkout"
	"github.com/imrishuroy/halfkg-storefront/internal/config"
	"github.com/imrishuroy/halfkg-storefront/internal/idempotency"
	"github.com/imrishuroy/halfkg-storefront/internal/logging"
	"github.com/imrishuroy/halfkg-storefront/internal/orders"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "storefront:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Production: cfg.App.IsProd(),
		Level:      cfg.App.LogLevel,
		File:       cfg.App.LogFile,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	orderStore := orders.NewStore(logger)
	history, err := orders.LoadHistory(time.Local)
	if err != nil {
		return fmt.Errorf("load order history: %w", err)
	}
	if err := orderStore.Seed(history); err != nil {
		return err
	}

	cartStore := cart.NewStore(logger)
	keys := idempotency.NewStore(cfg.Checkout.KeyTTL, logger)
	svc := checkout.NewService(cartStore, orderStore, keys, cfg.Checkout.DeliveryFee, logger)

	logger.Info("storefront ready",
		zap.String("env", cfg.App.Env),
		zap.Int("products", len(cat.Products())),
		zap.Int("orders", orderStore.Len()))

	s := newSession(sessionConfig{
		Catalog:        cat,
		Cart:           cartStore,
		Orders:         orderStore,
		Checkout:       svc,
		CurrencySymbol: cfg.Store.CurrencySymbol,
		Out:            os.Stdout,
		Logger:         logger,
	})
	defer s.Close()
	return s.Run(context.Background(), os.Stdin)
}
