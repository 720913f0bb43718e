package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"amlscope/internal/analysis"
	analysishandler "amlscope/internal/analysis/handler"
	"amlscope/internal/catalogue"
	cataloguehandler "amlscope/internal/catalogue/handler"
	cataloguemetrics "amlscope/internal/catalogue/metrics"
	"amlscope/internal/platform/config"
	"amlscope/internal/platform/httpserver"
	"amlscope/internal/platform/logger"
	"amlscope/internal/platform/metrics"
	"amlscope/internal/platform/redis"
	"amlscope/internal/screening/client"
	"amlscope/internal/screening/fixtures"
	"amlscope/internal/transfer"
	httptransport "amlscope/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Behaviour lives in the internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	reg := metrics.NewRegistry()

	screeningClient := client.New(cfg.Screening.BaseURL, cfg.Screening.Timeout,
		client.WithMetrics(client.NewMetrics(reg)))
	checks := map[string]httptransport.Checker{"screening": screeningClient}

	channel, closeChannel, err := buildChannel(ctx, cfg, reg, checks)
	if err != nil {
		return err
	}
	defer closeChannel()

	var source catalogue.Source = screeningClient
	if cfg.Catalogue.FixturesDir != "" {
		source = fixtures.New(cfg.Catalogue.FixturesDir, log)
		log.Info("serving catalogue from fixtures", "dir", cfg.Catalogue.FixturesDir)
	}

	gallery := catalogue.NewService(source, channel, cfg.Catalogue.PageSize, log, cataloguemetrics.New(reg))
	galleryHandler := cataloguehandler.New(gallery, log)
	submissions := analysis.NewService(screeningClient, channel, log, analysis.NewMetrics(reg))

	api := []httptransport.Registrar{
		analysishandler.New(submissions, log),
		galleryHandler,
	}
	if cfg.Catalogue.FixturesDir != "" {
		api = append(api, testsRoutes{galleryHandler})
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Registry:       reg,
		Metrics:        metrics.New(reg),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		API:            api,
		Checks:         checks,
	})
	srv := httpserver.New(cfg.Addr, router, cfg.Screening.Timeout)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting amlscope", "addr", cfg.Addr, "screening_api", cfg.Screening.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// buildChannel picks the Redis-backed slot when Redis is configured and the
// in-process slot otherwise.
func buildChannel(ctx context.Context, cfg config.Server, reg *prometheus.Registry, checks map[string]httptransport.Checker) (transfer.Channel, func(), error) {
	opts := []transfer.Option{
		transfer.WithTTL(cfg.Transfer.TTL),
		transfer.WithMetrics(transfer.NewMetrics(reg)),
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	if rc == nil {
		return transfer.NewMemoryChannel(opts...), func() {}, nil
	}
	checks["redis"] = rc
	return transfer.NewRedisChannel(rc.Client, opts...), func() { _ = rc.Close() }, nil
}

// testsRoutes mounts the screening-service compatible GET /tests.
type testsRoutes struct{ h *cataloguehandler.Handler }

func (t testsRoutes) Register(r chi.Router) { t.h.RegisterTests(r) }
