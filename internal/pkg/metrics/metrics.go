package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matgate_quotes_total",
		Help: "The total number of bulk pricing quotes computed",
	}, []string{"status", "customer_type"})

	LatencyBucket = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "matgate_latency_bucket",
		Help:    "Request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matgate_cache_lookups_total",
		Help: "Pricing cache lookups by outcome",
	}, []string{"outcome"})

	RateLimitRejects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matgate_ratelimit_rejects_total",
		Help: "Requests rejected by the fixed-window rate limiter",
	}, []string{"scope"})
)
