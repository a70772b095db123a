package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lending_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lending_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// LoansDisbursed counts loans created at application approval
	LoansDisbursed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lending_loans_disbursed_total",
			Help: "Total number of loans disbursed",
		},
	)

	// PaymentsRecorded counts payments by allocation type
	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lending_payments_recorded_total",
			Help: "Total number of payments recorded, by payment type",
		},
		[]string{"type"},
	)

	// InstallmentsOverdue counts installments flipped to overdue by the scheduler
	InstallmentsOverdue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lending_installments_overdue_total",
			Help: "Total number of installments marked overdue",
		},
	)
)
