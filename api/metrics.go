// Package api - Prometheus instrumentation
package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"rating-engine/core/rating"
)

// Quote outcomes
const (
	outcomeQuoted   = "quoted"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// Metrics holds the server's collectors
type Metrics struct {
	quotes          *prometheus.CounterVec
	premium         prometheus.Histogram
	fallbacks       *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		quotes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rating_quotes_total",
			Help: "Rating requests by outcome.",
		}, []string{"outcome"}),
		premium: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rating_premium_dollars",
			Help:    "Distribution of quoted premiums.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rating_table_fallback_total",
			Help: "Lookups resolved through the DEFAULT entry.",
		}, []string{"table"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

func (m *Metrics) observeQuote(result *rating.Result) {
	m.quotes.WithLabelValues(outcomeQuoted).Inc()
	m.premium.Observe(result.Premium.InexactFloat64())
	if result.Resolution.StateFallback {
		m.fallbacks.WithLabelValues("state").Inc()
	}
	if result.Resolution.BusinessFallback {
		m.fallbacks.WithLabelValues("business").Inc()
	}
}

func (m *Metrics) observeOutcome(outcome string) {
	m.quotes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeRequest(route, method string, status int, elapsed time.Duration) {
	m.requestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
