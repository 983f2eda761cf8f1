// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chart_ledger_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chart_ledger_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "endpoint"})

	// RevisionConflicts counts writes rejected because the supplied revision was stale.
	RevisionConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chart_ledger_revision_conflicts_total",
		Help: "Mutations rejected with a stale revision",
	}, []string{"aggregate"})

	// ValidationFailures counts entry and account inputs rejected by validation.
	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chart_ledger_validation_failures_total",
		Help: "Inputs rejected by validation",
	}, []string{"aggregate", "operation"})

	// Mutations counts successful writes.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chart_ledger_mutations_total",
		Help: "Successful ledger mutations",
	}, []string{"aggregate", "operation"})
)
