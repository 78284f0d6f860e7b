// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
	}, []string{"method", "route"})

	// TransitionsTotal counts workflow actions by stage reached and outcome.
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_workflow_transitions_total",
		Help: "Workflow actions applied or refused",
	}, []string{"action", "stage_before", "outcome"})

	// FundMovementsTotal counts ledger movements by currency and direction.
	FundMovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_fund_movements_total",
		Help: "Fund ledger movements written",
	}, []string{"currency", "type"})

	BatchPaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_batch_payments_total",
		Help: "Batch payment attempts",
	}, []string{"outcome"})

	BudgetChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_budget_checks_total",
		Help: "Budget consults",
	}, []string{"allowed"})

	SweepAdvancedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_sweep_advanced_total",
		Help: "Requisitions advanced by the stage timeout sweep",
	})
)

// Outcome labels shared by counters.
const (
	OutcomeApplied = "applied"
	OutcomeRefused = "refused"
	OutcomeFailed  = "failed"
)
