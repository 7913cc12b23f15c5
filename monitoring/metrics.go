package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_created_total",
			Help: "Tickets created across all events",
		},
	)

	paymentsInitialized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_initialized_total",
			Help: "Payment initializations by outcome",
		},
		[]string{"status"},
	)

	paymentsSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_settled_total",
			Help: "Payments moved out of Pending",
		},
		[]string{"status"},
	)

	passesIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "attendee_passes_issued_total",
			Help: "Admission passes issued by settled payments",
		},
	)

	checkIns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "check_ins_total",
			Help: "Check-in attempts by result",
		},
		[]string{"result"},
	)

	gatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_gateway_request_duration_seconds",
			Help:    "Latency of payment gateway calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func RecordTicketCreated() {
	ticketsCreated.Inc()
}

func RecordPaymentInitialized(status string) {
	paymentsInitialized.WithLabelValues(status).Inc()
}

func RecordPaymentSettled(status string, passes int) {
	paymentsSettled.WithLabelValues(status).Inc()
	if passes > 0 {
		passesIssued.Add(float64(passes))
	}
}

func RecordCheckIn(result string) {
	checkIns.WithLabelValues(result).Inc()
}

func ObserveGatewayRequest(operation string, d time.Duration) {
	gatewayDuration.WithLabelValues(operation).Observe(d.Seconds())
}
