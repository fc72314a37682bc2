package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// ScansTotal tracks driver scan passes.
	ScansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pairbot_ledger_scans_total",
		Help: "Total number of scan passes over the market catalog",
	})

	// DailyProfitUSD tracks the running profit for the current UTC day.
	DailyProfitUSD = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pairbot_ledger_daily_profit_usd",
		Help: "Running profit for the current UTC day in USD",
	})

	// TotalProfitUSD tracks cumulative profit since process start.
	TotalProfitUSD = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pairbot_ledger_total_profit_usd",
		Help: "Cumulative profit since process start in USD",
	})

	// InvestedUSD tracks cumulative capital deployed.
	InvestedUSD = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pairbot_ledger_invested_usd",
		Help: "Cumulative capital invested in USD",
	})
)
