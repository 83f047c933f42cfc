// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts served requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "futureintern_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "futureintern_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// RateLimitedTotal counts rejected requests per limiter
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "futureintern_rate_limited_total",
			Help: "Total number of requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)

	// RegistrationsTotal counts new accounts by role
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "futureintern_registrations_total",
			Help: "Total number of registered accounts",
		},
		[]string{"role"},
	)

	// ApplicationsSubmittedTotal counts submitted applications
	ApplicationsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "futureintern_applications_submitted_total",
			Help: "Total number of submitted applications",
		},
	)

	// ApplicationStatusChangesTotal counts status transitions by target status
	ApplicationStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "futureintern_application_status_changes_total",
			Help: "Total number of application status changes",
		},
		[]string{"status"},
	)

	// ChatbotRepliesTotal counts chatbot replies by source
	ChatbotRepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "futureintern_chatbot_replies_total",
			Help: "Total number of chatbot replies by source",
		},
		[]string{"source"},
	)

	// InternshipsImportedTotal counts internships created by bulk import
	InternshipsImportedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "futureintern_internships_imported_total",
			Help: "Total number of internships created by workbook import",
		},
	)
)
