// Package metrics holds the Prometheus collectors shared across modules.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LeadsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_scored_total",
			Help: "Total number of leads scored, by intent and classification source",
		},
		[]string{"intent", "source"},
	)

	ScoringRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scoring_runs_total",
			Help: "Total number of completed batch scoring runs",
		},
	)

	ScoringRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scoring_run_duration_seconds",
			Help:    "Duration of batch scoring runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		},
	)

	ClassifierCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifier_calls_total",
			Help: "Total number of external classifier calls, by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	ClassifierCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "classifier_call_duration_seconds",
			Help: "Duration of external classifier calls in seconds",
		},
		[]string{"provider"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request latency by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	ClassificationCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classification_cache_lookups_total",
			Help: "Classification cache lookups, by result",
		},
		[]string{"result"},
	)
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
