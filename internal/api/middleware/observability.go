package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shareit/backend/internal/infrastructure/observability"
	"go.opentelemetry.io/otel/attribute"
)

const unmatchedRoute = "unmatched"

type routeKey struct{}

// RouteRecorder reports the pattern the mux matched back to ObservabilityMiddleware.
// It wraps each registered handler, where r.Pattern is set.
func RouteRecorder(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if route, ok := r.Context().Value(routeKey{}).(*string); ok {
			*route = r.Pattern
		}
		next.ServeHTTP(w, r)
	})
}

// ObservabilityMiddleware adds OpenTelemetry tracing and metrics to HTTP requests
func ObservabilityMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var pattern string
			ctx := context.WithValue(r.Context(), routeKey{}, &pattern)

			ctx, span := observability.StartSpan(ctx, r.Method)
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.user_agent", r.UserAgent()),
			)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rw, r.WithContext(ctx))

			route := unmatchedRoute
			if pattern != "" {
				span.SetName(pattern)
				route = routePath(pattern)
			}

			observability.RecordRequestMetric(ctx, metrics, r.Method, route, rw.statusCode, time.Since(start))
			span.SetAttributes(
				attribute.String("http.route", route),
				attribute.Int("http.status_code", rw.statusCode),
			)
		})
	}
}

// routePath drops the method from a "GET /items/{id}" style pattern
func routePath(pattern string) string {
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}
