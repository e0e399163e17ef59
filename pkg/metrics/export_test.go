package metrics

import "github.com/prometheus/client_golang/prometheus"

// Exported for metrics_test only: lets the external test package assert on
// the package-private collectors without registering them (and thereby
// requiring a live registry) in every test.
func ExportedNodesGauge() prometheus.Gauge      { return nodesGauge }
func ExportedLevelMaxGauge() prometheus.Gauge   { return levelMaxGauge }
func ExportedPassTotal() *prometheus.CounterVec { return passTotal }
