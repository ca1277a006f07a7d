package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pwalczak/storefront/internal/bus"
	"github.com/pwalczak/storefront/internal/cart"
	"github.com/pwalczak/storefront/internal/catalog"
	"github.com/pwalczak/storefront/internal/db"
	"github.com/pwalczak/storefront/internal/dedup"
	"github.com/pwalczak/storefront/internal/httpapi"
	"github.com/pwalczak/storefront/internal/inventory"
	"github.com/pwalczak/storefront/internal/relay"
	"github.com/pwalczak/storefront/internal/sequence"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	// --- buses ---
	registry := bus.NewRegistry()
	events := bus.NewEventBus(registry, logger)
	queries := bus.NewQueryBus(registry)

	// --- contexts ---
	catalogRepo := catalog.NewPostgresRepository(pool)
	products := catalog.NewService(catalogRepo, events)

	stockRepo := inventory.NewPostgresRepository(pool)
	stock := inventory.NewService(stockRepo)

	cartRepo := cart.NewPostgresRepository(pool)
	carts := cart.NewService(
		cartRepo,
		catalog.NewCartProductAdapter(catalogRepo),
		inventory.NewAvailabilityAdapter(stock),
	)

	// --- reactors ---
	inventory.NewReactor(stock).Register(registry)
	cart.NewReactor(carts).Register(registry)

	// --- query handlers; duplicate registration fails fast here ---
	if err := catalog.RegisterQueryHandlers(registry, catalogRepo); err != nil {
		logger.Fatalf("register catalog queries: %v", err)
	}
	if err := inventory.RegisterQueryHandlers(registry, stock); err != nil {
		logger.Fatalf("register inventory queries: %v", err)
	}
	if err := cart.RegisterQueryHandlers(registry, carts); err != nil {
		logger.Fatalf("register cart queries: %v", err)
	}

	// --- AMQP relay (optional) ---
	if cfg.RelayEnabled {
		conn := relay.MustDial(cfg.AMQPURL, logger)
		defer conn.Close()

		pub, err := relay.NewPublisher(conn, sequence.NewRepository(pool), "storefront")
		if err != nil {
			logger.Fatalf("relay publisher: %v", err)
		}
		defer pub.Close()
		pub.Register(registry)

		if cfg.RelayConsume {
			consumer := relay.NewConsumer(events, dedup.NewRepository(pool), logger, "storefront")
			if err := consumer.Start(ctx, conn); err != nil {
				logger.Fatalf("relay consumer: %v", err)
			}
		}
	}

	// --- HTTP ---
	router := httpapi.NewRouter(
		httpapi.NewProductHandler(products, inventory.NewStockInfoAdapter(stock), cart.NewQuantityAdapter(carts)),
		httpapi.NewStockHandler(stock, queries),
		httpapi.NewCartHandler(carts),
	)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Printf("http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("shutdown signal: %s", sig)
	case err := <-errCh:
		logger.Printf("fatal error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = httpServer.Shutdown(shutdownCtx)
	cancel()

	logger.Printf("shutdown complete")
}
