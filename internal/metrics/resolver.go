package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var resolverAmbiguousLiveOutputs = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "teiki",
	Subsystem: "resolver",
	Name:      "ambiguous_live_outputs_total",
	Help:      "Count of projects observed with more than one unspent staking script output.",
})

// Resolver tracks anomalies observed by the UTXO resolver.
type Resolver struct{}

// NewResolver creates a Resolver metrics collector.
func NewResolver() *Resolver {
	return &Resolver{}
}

// AmbiguousLiveOutput records one resolution that had to tie-break between
// multiple unspent outputs.
func (m Resolver) AmbiguousLiveOutput() {
	resolverAmbiguousLiveOutputs.Inc()
}
