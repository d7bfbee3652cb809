// Package metrics exposes the Prometheus collectors for the HTTP surface and
// the store backends.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "raito_oracle",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Count of HTTP requests.",
	}, []string{"method", "path", "status"})
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "raito_oracle",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "raito_oracle",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Count of store operations.",
	}, []string{"operation", "status"})
	storeOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "raito_oracle",
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of store operations.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"operation", "status"})
)

// ObserveRequest records one handled HTTP request.
func ObserveRequest(method, path string, status int, started time.Time) {
	code := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, path, code).Inc()
	httpRequestDuration.WithLabelValues(method, path, code).Observe(time.Since(started).Seconds())
}

// StoreMetrics tracks store operations; it satisfies the dbsqlite Metrics
// interface.
type StoreMetrics struct{}

func NewStore() StoreMetrics {
	return StoreMetrics{}
}

// Observe records duration and status of a store operation.
func (StoreMetrics) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	storeOperationsTotal.WithLabelValues(operation, status).Inc()
	storeOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
