// Package requestlog emits one structured log line per HTTP request.
package requestlog

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mssola/useragent"

	"amlscope/pkg/requestcontext"
)

// Middleware logs method, route, status, latency, and the caller's browser.
// It expects requestid and metadata middleware to run first.
func Middleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			ctx := r.Context()
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			attrs := []any{
				"request_id", requestcontext.RequestID(ctx),
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"client_ip", requestcontext.ClientIP(ctx),
			}
			attrs = append(attrs, ClientAttrs(requestcontext.UserAgent(ctx))...)

			switch {
			case status >= http.StatusInternalServerError:
				logger.ErrorContext(ctx, "http request", attrs...)
			case status >= http.StatusBadRequest:
				logger.WarnContext(ctx, "http request", attrs...)
			default:
				logger.InfoContext(ctx, "http request", attrs...)
			}
		})
	}
}

// ClientAttrs summarises a User-Agent header as log attributes.
func ClientAttrs(ua string) []any {
	if ua == "" {
		return []any{"client", "unknown"}
	}
	parsed := useragent.New(ua)
	if parsed.Bot() {
		name, _ := parsed.Browser()
		return []any{"client", "bot", "bot_name", name}
	}
	name, version := parsed.Browser()
	if name == "" {
		return []any{"client", "unknown"}
	}
	return []any{
		"client", name,
		"client_version", version,
		"os", parsed.OS(),
		"mobile", parsed.Mobile(),
	}
}
