// Service netquery ingests monthly on-call duty workbooks and a site
// directory workbook into PostgreSQL and answers free-text questions about
// who is on duty today at a given site.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"

	"github.com/VictorOli23/Consultas-SPI/internal/api"
	"github.com/VictorOli23/Consultas-SPI/internal/config"
	"github.com/VictorOli23/Consultas-SPI/internal/db"
	"github.com/VictorOli23/Consultas-SPI/internal/ingest"
	"github.com/VictorOli23/Consultas-SPI/internal/legend"
	"github.com/VictorOli23/Consultas-SPI/internal/models"
	"github.com/VictorOli23/Consultas-SPI/internal/query"
	"github.com/VictorOli23/Consultas-SPI/internal/roster"
	"github.com/VictorOli23/Consultas-SPI/internal/sites"
)

func main() {
	cfg := config.LoadNetQuery()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.Migrate(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	clock := clockwork.NewRealClock()
	siteStore := sites.NewStore(pool)
	dutyStore := roster.NewStore(pool)

	ingester := ingest.NewService(siteStore, dutyStore, clock)
	resolver := query.NewResolver(siteStore, dutyStore, legend.Default(), clock)
	h := api.NewHandler(resolver, ingester, cfg.MaxUploadBytes)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	// Health probes
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Service: "netquery"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Healthy(r.Context(), pool); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable", Service: "netquery"})
			return
		}
		writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ready", Service: "netquery"})
	})

	// API
	r.Route("/v1", func(r chi.Router) {
		r.Post("/query", h.Query)
		r.Post("/ingest/sites", h.IngestSites)
		r.Post("/ingest/roster", h.IngestRoster)
	})

	serve(cfg, r)
}

func serve(cfg config.NetQuery, handler http.Handler) {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("netquery listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig)
	case err := <-errCh:
		slog.Error("server error", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
