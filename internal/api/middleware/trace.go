// Package middleware holds HTTP middleware shared across the router.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mixforge/mixforge-api/internal/api/shared"
	"github.com/mixforge/mixforge-api/internal/platform/logger"
)

// TraceMiddleware assigns each request a trace ID and threads a
// trace-enriched logger through the context so handlers, services, and
// stores all log under the same correlation key. Apply it early in the
// chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
