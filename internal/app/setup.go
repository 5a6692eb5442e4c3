// Package app contains the application setup for the inventory service.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/samir0607/InventoryMgmtSystem/internal/config"
	"github.com/samir0607/InventoryMgmtSystem/internal/inventory/dispatch"
	"github.com/samir0607/InventoryMgmtSystem/internal/inventory/store"
	"github.com/samir0607/InventoryMgmtSystem/internal/transport/tcp"
	"github.com/samir0607/InventoryMgmtSystem/pkg/metrics"
	"github.com/samir0607/InventoryMgmtSystem/pkg/server"
)

type Dependencies struct {
	Store      store.Store
	Dispatcher *dispatch.Dispatcher
	Logger     *slog.Logger
}

func SetupDependencies(st store.Store, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		Store:      st,
		Dispatcher: dispatch.NewDispatcher(st, logger),
		Logger:     logger,
	}
}

// SetupTCPServer creates the command server listening on the configured port.
func SetupTCPServer(deps *Dependencies, cfg *config.Config) *tcp.Server {
	return tcp.NewServer(fmt.Sprintf(":%d", cfg.Server.Port), deps.Dispatcher, deps.Logger)
}

// SetupOpsHandler initializes the ops HTTP routes: health probes and the
// Prometheus metrics page. Used directly by tests.
func SetupOpsHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux)
	return mux
}

// wireRoutes sets up the ops HTTP routes.
func wireRoutes(mux *chi.Mux) {
	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Get("/metrics", metrics.Handler())
}

// SetupOpsServer creates and configures the ops HTTP server.
func SetupOpsServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupOpsHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.Ops.Port,
		MaxHeaderBytes: cfg.Ops.MaxHeaderBytes,
		ReadTimeout:    cfg.Ops.Timeout.Read,
		WriteTimeout:   cfg.Ops.Timeout.Write,
		IdleTimeout:    cfg.Ops.Timeout.Idle,
		ReadHeader:     cfg.Ops.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
