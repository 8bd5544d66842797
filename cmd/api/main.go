package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hearthside-goods/storefront-backend/api/routes"
	"github.com/hearthside-goods/storefront-backend/internal/cart"
	"github.com/hearthside-goods/storefront-backend/internal/checkout"
	"github.com/hearthside-goods/storefront-backend/internal/customers"
	"github.com/hearthside-goods/storefront-backend/internal/orders"
	"github.com/hearthside-goods/storefront-backend/internal/pricing"
	"github.com/hearthside-goods/storefront-backend/internal/products"
	"github.com/hearthside-goods/storefront-backend/internal/reviews"
	"github.com/hearthside-goods/storefront-backend/internal/wishlist"
	"github.com/hearthside-goods/storefront-backend/pkg/config"
	"github.com/hearthside-goods/storefront-backend/pkg/db"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
	"github.com/hearthside-goods/storefront-backend/pkg/metrics"
	"github.com/hearthside-goods/storefront-backend/pkg/migrate"
	"github.com/hearthside-goods/storefront-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	svcs, err := buildServices(cfg, logg, dbClient, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, svcs),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server stopped")
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) (routes.Services, error) {
	calc := pricing.NewCalculator(cfg.Shipping, cfg.Tax)

	cartStorage, err := cart.NewRedisStorage(redisClient)
	if err != nil {
		return routes.Services{}, err
	}
	cartSvc, err := cart.NewService(cartStorage, logg)
	if err != nil {
		return routes.Services{}, err
	}

	productsRepo := products.NewRepository(dbClient.DB())
	productsSvc, err := products.NewService(productsRepo)
	if err != nil {
		return routes.Services{}, err
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	ordersSvc, err := orders.NewService(ordersRepo)
	if err != nil {
		return routes.Services{}, err
	}

	checkoutSvc, err := checkout.NewService(
		checkout.NewRepository(dbClient.DB()),
		dbClient,
		calc,
		cfg.Checkout.SubmitTimeout,
		logg,
	)
	if err != nil {
		return routes.Services{}, err
	}

	reviewsSvc, err := reviews.NewService(reviews.NewRepository(dbClient.DB()), productsRepo, ordersRepo, logg)
	if err != nil {
		return routes.Services{}, err
	}

	wishlistSvc, err := wishlist.NewService(wishlist.NewRepository(dbClient.DB()), productsRepo)
	if err != nil {
		return routes.Services{}, err
	}

	customersSvc, err := customers.NewService(customers.NewRepository(dbClient.DB()), ordersRepo)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Cart:      cartSvc,
		Checkout:  checkoutSvc,
		Customers: customersSvc,
		Orders:    ordersSvc,
		Pricing:   calc,
		Products:  productsSvc,
		Reviews:   reviewsSvc,
		Wishlist:  wishlistSvc,
	}, nil
}
