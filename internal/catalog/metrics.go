package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// PairsTracked tracks the current catalog size.
	PairsTracked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pairbot_catalog_pairs_tracked",
		Help: "Number of market pairs currently in the catalog",
	})

	// RefreshFailuresTotal tracks failed catalog refreshes.
	RefreshFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pairbot_catalog_refresh_failures_total",
		Help: "Total number of failed catalog refreshes",
	})
)
