package arbitrage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// OpportunitiesDetectedTotal tracks arbitrage opportunities detected.
	OpportunitiesDetectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pairbot_opportunities_detected_total",
		Help: "Total number of arbitrage opportunities detected",
	})

	// OpportunityEdgeBPS tracks pre-fee edge in basis points.
	OpportunityEdgeBPS = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pairbot_opportunity_edge_bps",
		Help:    "Arbitrage opportunity edge (1 - combined price) in basis points",
		Buckets: []float64{10, 25, 50, 100, 200, 500, 1000, 2000, 5000},
	})
)
