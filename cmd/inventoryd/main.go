// Package main implements the inventory command server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "net/http/pprof"

	"golang.org/x/sync/errgroup"

	"github.com/samir0607/InventoryMgmtSystem/internal/app"
	"github.com/samir0607/InventoryMgmtSystem/internal/config"
	"github.com/samir0607/InventoryMgmtSystem/internal/inventory/store"
	"github.com/samir0607/InventoryMgmtSystem/pkg/bootstrap"
	pkgconfig "github.com/samir0607/InventoryMgmtSystem/pkg/config"
	"github.com/samir0607/InventoryMgmtSystem/pkg/config/configloader"
)

const serviceName = "inventory"

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run initializes the application, selects the store backend, and starts
// the TCP command server plus the ops and pprof HTTP servers.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	st, cleanup, err := setupStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	deps := app.SetupDependencies(st, logger)
	tcpServer := app.SetupTCPServer(deps, cfg)
	opsServer := app.SetupOpsServer(deps, cfg)
	pprofServer := &http.Server{
		Addr: cfg.PProf.Addr,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start the TCP command server; it shuts itself down on context
	// cancellation and waits for live sessions to finish.
	g.Go(func() error {
		return tcpServer.ListenAndServe(gCtx)
	})

	// Start the ops HTTP server
	g.Go(func() error {
		logger.Info("Ops server listening", slog.String("addr", opsServer.Addr))
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown ops server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down ops server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return opsServer.Shutdown(shutdownCtx)
	})

	// Start the pprof server if enabled
	if cfg.PProf.Enabled {
		g.Go(func() error {
			logger.Info("Pprof server listening", slog.String("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server failed: %w", err)
			}
			return nil
		})
		// gracefully shutdown pprof server on context cancellation
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down pprof server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// setupStore builds the configured Store implementation. The returned
// cleanup releases the database pool for the postgres driver and is a
// no-op for the in-memory driver.
func setupStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, func(), error) {
	switch cfg.Store.Driver {
	case pkgconfig.StoreDriverPostgres:
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create database connection pool: %w", err)
		}
		logger.Info("Successfully connected to the database!")
		return store.NewPgStore(dbPool), dbPool.Close, nil
	default:
		return store.NewMemoryStore(), func() {}, nil
	}
}
