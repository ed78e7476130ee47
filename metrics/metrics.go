// Package metrics provides Prometheus instrumentation for the fetch client
// and the HTTP servers, exposed at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rxfetch"

// Fetch outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

// Registry holds the Prometheus collectors for one process.
type Registry struct {
	// User fetch metrics
	FetchRequests *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	FetchInFlight prometheus.Gauge
	RateLimited   *prometheus.CounterVec

	// HTTP server metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates a Registry backed by a fresh Prometheus registry that also
// carries the Go runtime and process collectors.
func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewRegistry(reg)
}

// NewRegistry registers the collectors on reg.
func NewRegistry(reg *prometheus.Registry) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		FetchRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "fetch",
				Name:      "requests_total",
				Help:      "User fetches by outcome",
			},
			[]string{"outcome"},
		),

		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "fetch",
				Name:      "duration_seconds",
				Help:      "Time spent fetching one user record",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),

		FetchInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "fetch",
				Name:      "in_flight",
				Help:      "User fetches currently waiting on the network",
			},
		),

		RateLimited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "fetch",
				Name:      "rate_limited_total",
				Help:      "Fetches that had to wait for a rate limiter token",
			},
			[]string{"limiter"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),

		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Time spent serving HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.gatherer
}
