package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// deliveriesTotal counts outbound delivery attempts by event and outcome.
var deliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "backoffice_notification_deliveries_total",
	Help: "Outbound notification delivery attempts by event and status.",
}, []string{"event", "status"})
