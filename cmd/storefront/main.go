package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/migrate"
	"storefront/internal/notify"
	"storefront/internal/popup"
	"storefront/internal/session"
	"storefront/internal/statestore"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var (
		repo statestore.Repository
		pool *pgxpool.Pool
	)
	switch cfg.StateBackend {
	case "memory":
		repo = statestore.NewMemory()
	case "bolt":
		boltRepo, closeDB, err := statestore.NewBolt(cfg.StatePath)
		if err != nil {
			logger.Fatalf("open bolt state db: %v", err)
		}
		defer closeDB()
		repo = boltRepo
	case "postgres":
		var err error
		pool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect state db: %v", err)
		}
		defer pool.Close()
		if err := migrate.Apply(ctx, pool); err != nil {
			logger.Fatalf("apply migrations: %v", err)
		}
		repo = statestore.NewPostgres(pool)
	default:
		repo = statestore.NewFile(cfg.StatePath)
	}

	bus := notify.New(logger)
	holder := session.NewHolder(repo, bus, logger)
	client := api.New(cfg.UpstreamBaseURL, holder)
	holder.Bind(client)

	cartStore := cart.NewStore(repo, bus, logger)
	cartStore.Restore(ctx)

	// Show the cached profile immediately, then let the upstream confirm or
	// evict it.
	holder.Restore(ctx)
	holder.Reconcile(ctx)

	scheduler := popup.NewScheduler(client, bus, logger, cfg.PopupDuration)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	checkoutSvc := checkout.New(cartStore, client, holder, bus, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, pool, httpserver.Deps{
		Cart:     cartStore,
		Session:  holder,
		Checkout: checkoutSvc,
		Popups:   scheduler,
		Catalog:  client,
		Admin:    client,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting storefront on %s (upstream %s)", cfg.HTTPAddr, cfg.UpstreamBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
