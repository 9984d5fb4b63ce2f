// Package metrics holds the process-wide Prometheus collectors. Everything is
// registered on the default registry so promhttp.Handler can serve it directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "brandlink",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, labelled by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "brandlink",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	HTTPRequestsThrottled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "brandlink",
		Subsystem: "http",
		Name:      "requests_throttled_total",
		Help:      "Requests rejected by the rate limiter.",
	})

	SweepRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "brandlink",
		Subsystem: "worker",
		Name:      "expiry_sweep_runs_total",
		Help:      "Completed expiry sweep passes.",
	})

	SweepSubscriptionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "brandlink",
		Subsystem: "worker",
		Name:      "subscriptions_expired_total",
		Help:      "Subscriptions expired by the sweep worker.",
	})

	OutboxEventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "brandlink",
		Subsystem: "worker",
		Name:      "outbox_events_published_total",
		Help:      "Domain events published by the outbox relay.",
	})
)
