package clob

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// PriceFetchFailuresTotal tracks failed price lookups.
	PriceFetchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pairbot_clob_price_fetch_failures_total",
		Help: "Total number of failed price fetches",
	})

	// OrderSubmissionsTotal tracks order submissions by outcome.
	OrderSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pairbot_clob_order_submissions_total",
			Help: "Total number of FOK order submissions",
		},
		[]string{"result"},
	)

	// CancellationsTotal tracks cancellation attempts by outcome.
	CancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pairbot_clob_cancellations_total",
			Help: "Total number of order cancellation attempts",
		},
		[]string{"result"},
	)
)
