package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var scansTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "backoffice_stock_scans_total",
		Help: "Total stock scan runs by outcome.",
	},
	[]string{"outcome"},
)
