package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	statsRefresherProjectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "teiki",
		Subsystem: "stats_refresher",
		Name:      "projects_total",
		Help:      "Count of per-project stats refreshes.",
	}, []string{"status"})
	statsRefresherRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "teiki",
		Subsystem: "stats_refresher",
		Name:      "runs_total",
		Help:      "Count of refresher sweeps.",
	}, []string{"status"})
)

// StatsRefresher tracks progress of the background stats refresher.
type StatsRefresher struct{}

// NewStatsRefresher creates a StatsRefresher metrics collector.
func NewStatsRefresher() *StatsRefresher {
	return &StatsRefresher{}
}

// ObserveProject records one per-project refresh outcome.
func (m StatsRefresher) ObserveProject(err error) {
	statsRefresherProjectsTotal.WithLabelValues(statusLabel(err)).Inc()
}

// ObserveRun records one full sweep outcome.
func (m StatsRefresher) ObserveRun(err error) {
	statsRefresherRunsTotal.WithLabelValues(statusLabel(err)).Inc()
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
