package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// ReportsTotal tracks report deliveries by outcome.
	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pairbot_reports_total",
			Help: "Total number of daily report delivery attempts",
		},
		[]string{"result"},
	)
)
