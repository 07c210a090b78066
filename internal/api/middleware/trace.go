package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/copyforge-api/internal/api/shared"
	"github.com/phrazzld/copyforge-api/internal/platform/logger"
)

// RequestIDHeader carries the trace ID in both directions.
const RequestIDHeader = "X-Request-ID"

// TraceMiddleware returns middleware that assigns every request a trace ID,
// echoes it in the X-Request-ID response header, attaches a request-scoped
// logger derived from base, and logs request completion.
// It should be applied early in the chain so later handlers see the logger.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := logger.WithLogger(r.Context(), base)
			ctx = shared.SetTraceID(ctx, r.Header.Get(RequestIDHeader))
			w.Header().Set(RequestIDHeader, shared.GetTraceID(ctx))

			log := logger.FromContext(ctx)
			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			log.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
