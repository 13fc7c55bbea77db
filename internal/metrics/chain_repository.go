// Package metrics exposes prometheus collectors for the backend services.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chainRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "teiki",
		Subsystem: "chain_repository",
		Name:      "operations_total",
		Help:      "Count of chain store operations.",
	}, []string{"operation", "status"})
	chainRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "teiki",
		Subsystem: "chain_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of chain store operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"operation", "status"})
)

// ChainRepository tracks metrics for ClickHouse chain store operations.
type ChainRepository struct{}

// NewChainRepository creates a ChainRepository metrics collector.
func NewChainRepository() *ChainRepository {
	return &ChainRepository{}
}

// Observe records duration and status of a chain store operation.
func (m ChainRepository) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	chainRepositoryRequestsTotal.WithLabelValues(operation, status).Inc()
	chainRepositoryRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
