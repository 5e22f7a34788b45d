package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// MetricsMiddleware records HTTP request metrics.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics recording.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses ID-bearing paths to keep label cardinality low.
func normalizePath(path string) string {
	const accountsPrefix = "/api/v1/accounts/"

	if rest, ok := strings.CutPrefix(path, accountsPrefix); ok {
		switch rest {
		case "transfer", "transactions", "":
			return path
		}

		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return accountsPrefix + ":id" + rest[i:]
		}

		return accountsPrefix + ":id"
	}

	return path
}
