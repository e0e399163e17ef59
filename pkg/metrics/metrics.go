// Package metrics wires Prometheus instrumentation around pass
// invocations: gauges tracking the graph's current size and depth, and a
// counter vector tallying how many times each named pass has run.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	nodesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "aigforge_nodes",
			Help: "Number of live AND nodes in the current graph",
		},
	)

	levelMaxGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "aigforge_level_max",
			Help: "Longest AND path from a primary input in the current graph",
		},
	)

	passTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aigforge_pass_total",
			Help: "Number of times each named pass has run",
		},
		[]string{"pass"},
	)
)

// Register registers every metric with the default Prometheus registry.
// Call once, before cmd/aigforge serve starts its HTTP handler.
func Register() {
	prometheus.MustRegister(nodesGauge)
	prometheus.MustRegister(levelMaxGauge)
	prometheus.MustRegister(passTotal)
}

// Recorder implements pkg/aig/pass.Observer, updating this package's
// metrics after every pass the driver it's attached to runs.
type Recorder struct{}

// NewRecorder returns a Recorder ready to attach via
// (*pass.Driver).SetObserver.
func NewRecorder() Recorder { return Recorder{} }

// ObservePass satisfies pkg/aig/pass.Observer.
func (Recorder) ObservePass(pass string, nodesBefore, nodesAfter int, levelMax uint32) {
	nodesGauge.Set(float64(nodesAfter))
	levelMaxGauge.Set(float64(levelMax))
	passTotal.WithLabelValues(pass).Inc()
}
