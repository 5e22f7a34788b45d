package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCompleted prometheus.Counter
	TransferDuration   prometheus.Histogram
	TransferAmount     prometheus.Histogram
	TransferErrors     *prometheus.CounterVec

	// Account metrics
	AccountsOpened    prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts prometheus.Counter
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates all metrics and registers them with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics against the given registerer.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransfersCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_transfers_completed_total",
			Help: "Total number of transfers completed",
		}),
		TransferDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobank_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobank_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		AccountsOpened: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
		AccountOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gobank_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		AuthAttempts: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_auth_attempts_total",
			Help: "Total authentication attempts",
		}),
		AuthFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
