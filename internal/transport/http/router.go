// Package httptransport assembles the HTTP surface: shared middleware,
// operational endpoints, and the feature handlers mounted under /api.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"amlscope/internal/platform/metrics"
	"amlscope/pkg/platform/httputil"
	"amlscope/pkg/platform/middleware/metadata"
	"amlscope/pkg/platform/middleware/requestid"
	"amlscope/pkg/platform/middleware/requestlog"
	"amlscope/pkg/platform/middleware/requesttime"
)

// readyTimeout bounds a single readiness probe.
const readyTimeout = 3 * time.Second

// Registrar mounts a feature's routes.
type Registrar interface {
	Register(r chi.Router)
}

// Checker reports whether a dependency is usable.
type Checker interface {
	Health(ctx context.Context) error
}

// CheckFunc adapts a function to Checker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Health(ctx context.Context) error { return f(ctx) }

// Deps carries everything the router needs.
type Deps struct {
	Logger         *slog.Logger
	Registry       *prometheus.Registry
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	// API handlers are mounted under /api in order.
	API []Registrar
	// Checks are probed by /ready, keyed by dependency name.
	Checks map[string]Checker
}

// NewRouter wires all public endpoints.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requestlog.Middleware(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(d.Metrics.Middleware)
	r.Use(cors.Handler(corsOptions(d.AllowedOrigins)))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", readyHandler(d.Checks))
	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(d.Registry))
	}

	r.Route("/api", func(api chi.Router) {
		for _, h := range d.API {
			h.Register(api)
		}
	})
	return r
}

// corsOptions allows credentials only for an explicit origin list; browsers
// reject credentialed responses to a wildcard origin.
func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", requestid.Header},
		ExposedHeaders:   []string{"Location", requestid.Header},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	}
}

// ReadyResponse lists each dependency's state.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// readyHandler probes every dependency concurrently. Any failure makes the
// whole response 503.
func readyHandler(checks map[string]Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		var (
			mu      sync.Mutex
			results = make(map[string]string, len(checks))
			failed  bool
			g       errgroup.Group
		)
		for name, check := range checks {
			g.Go(func() error {
				state := "ok"
				if err := check.Health(ctx); err != nil {
					state = err.Error()
				}
				mu.Lock()
				defer mu.Unlock()
				results[name] = state
				if state != "ok" {
					failed = true
				}
				return nil
			})
		}
		_ = g.Wait()

		resp := ReadyResponse{Status: "ok", Checks: results}
		status := http.StatusOK
		if failed {
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, resp)
	}
}
