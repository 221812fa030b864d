package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bridge_operations_total", Help: "Bridge operations attempted, by token and outcome"},
		[]string{"token", "outcome"},
	)
	QuotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bridge_quotes_total", Help: "Quotes fetched"},
		[]string{"token"},
	)
	QuotesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bridge_quotes_rejected_total", Help: "Quotes rejected by thresholds"},
		[]string{"token"},
	)
	PollAttempts = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bridge_poll_attempts_total", Help: "Deposit status polls issued"},
	)
)

func init() {
	prometheus.MustRegister(OperationsTotal, QuotesTotal, QuotesRejected, PollAttempts)
}
