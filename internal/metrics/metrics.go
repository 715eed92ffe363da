// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cotesud"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by route pattern and status code.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// EnrichmentFailures counts swallowed per-property enrichment errors.
	EnrichmentFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "property_enrichment_failures_total",
		Help:      "Per-property ACF or attachment fetches that failed.",
	}, []string{"kind"})

	// Fallbacks counts responses built from static content.
	Fallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fallback_responses_total",
		Help:      "Responses served from static default content.",
	}, []string{"component"})

	FeedCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_cache_results_total",
		Help:      "Feed proxy cache outcomes: fresh, refreshed, stale or empty.",
	}, []string{"result"})

	ReviewsStored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_stored_total",
		Help:      "Reviews newly written to the store.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
