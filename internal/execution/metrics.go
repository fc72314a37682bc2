package execution

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExecutionsTotal counts execution attempts by outcome.
	ExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pairbot_executions_total",
			Help: "Total number of execution attempts by result",
		},
		[]string{"result"},
	)

	// CleanupsTotal counts cancellations of partially executed attempts.
	CleanupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pairbot_execution_cleanups_total",
			Help: "Total number of partial-fill cleanup cancellations by result",
		},
		[]string{"result"},
	)

	// ExecutionDurationSeconds tracks how long a full two-leg attempt takes.
	ExecutionDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pairbot_execution_duration_seconds",
			Help:    "Duration of two-leg execution attempts",
			Buckets: prometheus.DefBuckets,
		},
	)

	// RealizedProfitUSD accumulates profit from fully executed attempts.
	RealizedProfitUSD = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pairbot_realized_profit_usd_total",
			Help: "Cumulative realized profit in USD net of the fee haircut",
		},
	)
)
