package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// QuoteMetrics holds every collector the relay exports
type QuoteMetrics struct {
	// Inbound HTTP
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Rejected credentials
	AuthFailuresTotal prometheus.Counter

	// Calls to the pricing provider
	UpstreamRequestsTotal *prometheus.CounterVec
	UpstreamDuration      prometheus.Histogram

	// Quotes built or failed, by error kind
	QuotesTotal *prometheus.CounterVec
}

// NewQuoteMetrics registers the relay collectors on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &QuoteMetrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_http_requests_total",
				Help: "Inbound HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "status"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "relay_http_request_duration_seconds",
				Help:    "Inbound HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),

		AuthFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "relay_auth_failures_total",
				Help: "Requests rejected by the bearer token check",
			},
		),

		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_upstream_requests_total",
				Help: "Calls to the pricing provider by outcome (status code or error)",
			},
			[]string{"outcome"},
		),

		UpstreamDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "relay_upstream_request_duration_seconds",
				Help:    "Pricing provider call latency",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),

		QuotesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_quotes_total",
				Help: "Quote lookups by result",
			},
			[]string{"result"},
		),
	}
}

// ObserveUpstream records one provider call
func (m *QuoteMetrics) ObserveUpstream(outcome string, d time.Duration) {
	m.UpstreamRequestsTotal.WithLabelValues(outcome).Inc()
	m.UpstreamDuration.Observe(d.Seconds())
}

// ObserveRequest records one inbound request
func (m *QuoteMetrics) ObserveRequest(route, method string, status int, d time.Duration) {
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// IncQuote counts a quote lookup result ("ok" or an error kind)
func (m *QuoteMetrics) IncQuote(result string) {
	m.QuotesTotal.WithLabelValues(result).Inc()
}

// IncAuthFailure counts a rejected credential
func (m *QuoteMetrics) IncAuthFailure() {
	m.AuthFailuresTotal.Inc()
}
