package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	contentRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "teiki",
		Subsystem: "content_repository",
		Name:      "operations_total",
		Help:      "Count of content store operations.",
	}, []string{"operation", "status"})
	contentRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "teiki",
		Subsystem: "content_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of content store operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"operation", "status"})
)

// ContentRepository tracks metrics for Postgres content store operations.
type ContentRepository struct{}

// NewContentRepository creates a ContentRepository metrics collector.
func NewContentRepository() *ContentRepository {
	return &ContentRepository{}
}

// Observe records duration and status of a content store operation.
func (m ContentRepository) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	contentRepositoryRequestsTotal.WithLabelValues(operation, status).Inc()
	contentRepositoryRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
