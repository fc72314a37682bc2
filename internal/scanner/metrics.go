package scanner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicksTotal counts scan loop iterations.
	TicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pairbot_scanner_ticks_total",
			Help: "Total number of scan ticks started",
		},
	)

	// TickFaultsTotal counts ticks aborted by a fault.
	TickFaultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pairbot_scanner_tick_faults_total",
			Help: "Total number of scan ticks that ended with an error",
		},
	)

	// PairsScanned is the number of market pairs covered by the last tick.
	PairsScanned = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pairbot_scanner_pairs",
			Help: "Number of market pairs scanned in the most recent tick",
		},
	)
)
