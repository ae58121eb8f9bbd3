package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardanlabs/conf/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"storefront-gateway/internal/analytics"
	"storefront-gateway/internal/cartstore"
	"storefront-gateway/internal/commerce"
	"storefront-gateway/internal/config"
	"storefront-gateway/internal/db"
	"storefront-gateway/internal/httpserver"
	"storefront-gateway/internal/pricing"
	"storefront-gateway/internal/repository/snapshot"
	"storefront-gateway/internal/session"
)

const confPrefix = "STOREFRONT"

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if err := run(logger); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func run(logger *logrus.Logger) error {
	var cfg config.Config
	help, err := conf.Parse(confPrefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	shipping, err := shippingPolicy(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var pool *pgxpool.Pool
	var snapshots cartstore.SnapshotRepository
	if cfg.DB.DSN != "" {
		pool, err = db.Connect(ctx, cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("connect snapshot db: %w", err)
		}
		defer pool.Close()
		snapshots = snapshot.NewPostgres(pool)
		logger.Info("snapshot store: postgres")
	} else {
		snapshots = snapshot.NewMemory()
		logger.Warn("snapshot store: in-memory (no DB DSN configured)")
	}

	commerceCfg := commerce.Config{
		StoreDomain: cfg.Commerce.StoreDomain,
		APIVersion:  cfg.Commerce.APIVersion,
		AccessToken: cfg.Commerce.AccessToken,
		Timeout:     cfg.Commerce.Timeout,
	}
	if !commerceCfg.Configured() {
		logger.Warn("commerce API credentials absent; cart operations will report a configuration error")
	}
	client := commerce.NewClient(commerceCfg, logger)

	manager := cartstore.NewManager(client, snapshots, cartstore.Options{
		Timeout:         cfg.Cart.OperationTimeout,
		DefaultCurrency: cfg.Cart.DefaultCurrency,
	}, logger)
	manager.OnEvent(analytics.NewTracker(logger).Track)

	srv := httpserver.New(cfg.Web.Addr, logger, pool, httpserver.Deps{
		Carts:           manager,
		Catalog:         client,
		Sessions:        session.NewManager(cfg.Cart.SessionTTL),
		Shipping:        shipping,
		DefaultCurrency: cfg.Cart.DefaultCurrency,
		CORSOrigins:     cfg.Web.CORSOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("starting http server on %s", cfg.Web.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Infof("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Errorf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	} else {
		logger.Info("server stopped")
	}
	return nil
}

func shippingPolicy(cfg config.Config) (pricing.ShippingPolicy, error) {
	threshold, err := decimal.NewFromString(cfg.Shipping.FreeThreshold)
	if err != nil {
		return pricing.ShippingPolicy{}, fmt.Errorf("parse shipping free threshold: %w", err)
	}
	rate, err := decimal.NewFromString(cfg.Shipping.FlatRate)
	if err != nil {
		return pricing.ShippingPolicy{}, fmt.Errorf("parse shipping flat rate: %w", err)
	}
	return pricing.ShippingPolicy{
		FreeShippingThreshold: threshold,
		FlatRate:              rate,
		Currency:              cfg.Cart.DefaultCurrency,
	}, nil
}
