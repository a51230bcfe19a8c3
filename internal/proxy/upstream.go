// internal/proxy/upstream.go
package proxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"ledgergate/internal/httputils"
	"ledgergate/internal/observability/logging"
	"ledgergate/internal/observability/metrics"
)

// Upstream proxies gated requests through to the rendering upstream
// unmodified. Pass-through is the gate's Allow outcome made concrete.
type Upstream struct {
	proxy   *httputil.ReverseProxy
	url     *url.URL
	logger  *logging.Logger
	metrics *metrics.Collector
}

// Config holds upstream configuration
type Config struct {
	// URL is the URL of the rendering upstream
	URL *url.URL

	// Timeout is the maximum time to wait for upstream response headers
	Timeout time.Duration
}

// New creates an upstream proxy.
func New(config Config, logger *logging.Logger, metricsCollector *metrics.Collector) *Upstream {
	target := httputil.NewSingleHostReverseProxy(config.URL)
	target.Transport = &http.Transport{
		ResponseHeaderTimeout: config.Timeout,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	u := &Upstream{
		proxy:   target,
		url:     config.URL,
		logger:  logger.WithModule("proxy"),
		metrics: metricsCollector,
	}

	target.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		u.logger.Error("Upstream request failed", logging.Err(err),
			"method", r.Method, "path", r.URL.Path)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
	}

	return u
}

// ServeHTTP proxies the request and records upstream metrics.
func (u *Upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	wrapper := httputils.NewResponseWriter(w)

	u.proxy.ServeHTTP(wrapper, r)

	u.metrics.RecordUpstreamRequest(r.Method, wrapper.StatusCode, time.Since(startTime))
}
