package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "teiki",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Count of handled HTTP requests.",
	}, []string{"path", "code"})
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "teiki",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of handled HTTP requests.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"path", "code"})
)

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// InstrumentHandler wraps next so every request is counted and timed under
// the given path label.
func InstrumentHandler(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		next.ServeHTTP(rec, req)

		code := strconv.Itoa(rec.code)
		httpRequestsTotal.WithLabelValues(path, code).Inc()
		httpRequestDuration.WithLabelValues(path, code).Observe(time.Since(started).Seconds())
	})
}
