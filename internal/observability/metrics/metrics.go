package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Common label names for consistent metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelOutcome = "outcome"
	LabelReason  = "reason"
	LabelResult  = "result"
	LabelSource  = "source"
)

var (
	// RequestsTotal counts all HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgergate_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	// RequestDuration tracks the duration of HTTP requests
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledgergate_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	// DecisionsTotal counts gate decisions by outcome
	DecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgergate_gate_decisions_total",
			Help: "Total number of gate decisions by outcome",
		},
		[]string{LabelOutcome},
	)

	// BypassTotal counts requests that skipped the gate entirely
	BypassTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgergate_bypass_total",
			Help: "Total number of requests bypassing the gate",
		},
		[]string{LabelReason},
	)

	// CredentialExtractionsTotal counts credential extraction outcomes
	CredentialExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgergate_credential_extractions_total",
			Help: "Total number of credential cookie extractions by result",
		},
		[]string{LabelResult},
	)

	// LocaleResolutionsTotal counts locale resolutions by source
	LocaleResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgergate_locale_resolutions_total",
			Help: "Total number of locale resolutions by source",
		},
		[]string{LabelSource},
	)

	// UpstreamRequestTotal counts requests passed through to the rendering upstream
	UpstreamRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgergate_upstream_requests_total",
			Help: "Total number of requests proxied to the upstream",
		},
		[]string{LabelMethod, LabelStatus},
	)

	// UpstreamRequestDuration tracks the duration of upstream requests
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledgergate_upstream_request_duration_seconds",
			Help:    "Duration of proxied upstream requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod},
	)
)

// Collector provides methods for recording metrics
type Collector struct{}

// NewCollector creates a new metrics collector
func NewCollector() *Collector {
	return &Collector{}
}

// RecordRequest records metrics for an HTTP request
func (c *Collector) RecordRequest(method, path string, status int, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, path, http.StatusText(status)).Inc()
	RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDecision records a gate decision outcome
func (c *Collector) RecordDecision(outcome string) {
	DecisionsTotal.WithLabelValues(outcome).Inc()
}

// RecordBypass records a request that skipped the gate
func (c *Collector) RecordBypass(reason string) {
	BypassTotal.WithLabelValues(reason).Inc()
}

// RecordCredential records the result of a credential extraction
func (c *Collector) RecordCredential(result string) {
	CredentialExtractionsTotal.WithLabelValues(result).Inc()
}

// RecordLocale records the source of a locale resolution
func (c *Collector) RecordLocale(source string) {
	LocaleResolutionsTotal.WithLabelValues(source).Inc()
}

// RecordUpstreamRequest records a request proxied to the upstream
func (c *Collector) RecordUpstreamRequest(method string, status int, duration time.Duration) {
	UpstreamRequestTotal.WithLabelValues(method, http.StatusText(status)).Inc()
	UpstreamRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// Handler returns an HTTP handler for exposing metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
