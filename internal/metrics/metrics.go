// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/acucogn/site/internal/cache"
)

const namespace = "acucogn"

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
	OutcomeCacheHit = "cache_hit"
	OutcomeFallback = "fallback"
)

// Metrics holds all collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ArticleFetchesTotal *prometheus.CounterVec
	LeadSubmissionTotal *prometheus.CounterVec
	ChatMessagesTotal   *prometheus.CounterVec
	ChatReplyDuration   prometheus.Histogram
}

// New creates and registers all collectors with reg. A nil reg means the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route pattern, method and status code.",
			},
			[]string{"route", "method", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route pattern.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		ArticleFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "blog",
				Name:      "fetches_total",
				Help:      "Article reads by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		LeadSubmissionTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "leads",
				Name:      "submissions_total",
				Help:      "Contact form submissions by outcome.",
			},
			[]string{"outcome"},
		),
		ChatMessagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "chat",
				Name:      "messages_total",
				Help:      "Chat messages sent by outcome.",
			},
			[]string{"outcome"},
		),
		ChatReplyDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "chat",
				Name:      "reply_duration_seconds",
				Help:      "Time spent waiting for the chat endpoint.",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
			},
		),
	}
}

// ArticleFetch counts one article read.
func (m *Metrics) ArticleFetch(operation, outcome string) {
	if m == nil {
		return
	}
	m.ArticleFetchesTotal.WithLabelValues(operation, outcome).Inc()
}

// LeadSubmission counts one contact form submission.
func (m *Metrics) LeadSubmission(outcome string) {
	if m == nil {
		return
	}
	m.LeadSubmissionTotal.WithLabelValues(outcome).Inc()
}

// ChatMessage counts one chat send and records how long the reply took.
func (m *Metrics) ChatMessage(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.ChatMessagesTotal.WithLabelValues(outcome).Inc()
	m.ChatReplyDuration.Observe(seconds)
}

// RegisterCacheStats exposes the hit and miss counters of sp.
func RegisterCacheStats(reg prometheus.Registerer, backend string, sp cache.StatsProvider) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	labels := prometheus.Labels{"backend": backend}

	factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   "cache",
		Name:        "hits_total",
		Help:        "Article cache hits.",
		ConstLabels: labels,
	}, func() float64 { return float64(sp.Stats().Hits) })

	factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   "cache",
		Name:        "misses_total",
		Help:        "Article cache misses.",
		ConstLabels: labels,
	}, func() float64 { return float64(sp.Stats().Misses) })
}
