// internal/gate/middleware.go
package gate

import (
	"net/http"
	"time"

	"ledgergate/internal/contextutil"
	"ledgergate/internal/observability/logging"
	"ledgergate/internal/observability/metrics"
	"ledgergate/internal/session"
)

// Middleware runs the full gating sequence on every request: bypass filter,
// credential extraction, locale resolution, access decision. Allowed requests
// continue to the next handler with the credential and locale on the context;
// everything else is answered with a same-origin redirect.
type Middleware struct {
	gate      *Gate
	extractor *session.Extractor
	logger    *logging.Logger
	metrics   *metrics.Collector
	now       func() time.Time
}

// NewMiddleware creates the gating middleware.
func NewMiddleware(g *Gate, extractor *session.Extractor, logger *logging.Logger, metricsCollector *metrics.Collector) *Middleware {
	return &Middleware{
		gate:      g,
		extractor: extractor,
		logger:    logger.WithModule("gate.middleware"),
		metrics:   metricsCollector,
		now:       time.Now,
	}
}

// Handler wraps next with the gate.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if reason, ok := Bypass(path); ok {
			m.metrics.RecordBypass(reason)
			next.ServeHTTP(w, r)
			return
		}

		logger := logging.LoggerFromContext(r.Context())
		if logger == nil {
			logger = m.logger
		}

		cred := m.extractor.FromRequest(r, m.now())
		resolution := m.gate.locales.Resolve(path, m.extractor.LocaleCookie(r), r.Header.Get("Accept-Language"))
		m.metrics.RecordLocale(string(resolution.Source))

		decision := m.gate.Evaluate(Request{
			Path:          path,
			Locale:        resolution.Locale,
			StrippedPath:  resolution.StrippedPath,
			HasPathLocale: resolution.HasPathLocale,
			LoggedIn:      cred.LoggedIn(),
			Role:          cred.Role,
		})
		m.metrics.RecordDecision(decision.Outcome.String())

		logger.Debug("Gate decision",
			"path", path,
			"outcome", decision.Outcome.String(),
			"locale", decision.Locale,
			"locale_source", resolution.Source,
			"logged_in", cred.LoggedIn(),
			"role", string(cred.Role),
		)

		if decision.Outcome == Allow {
			w.Header().Set("Content-Language", decision.Locale)
			direction := "ltr"
			if m.gate.locales.IsRTL(decision.Locale) {
				direction = "rtl"
			}
			w.Header().Set("X-Text-Direction", direction)

			ctx := contextutil.WithCredential(r.Context(), cred)
			ctx = contextutil.WithLocale(ctx, decision.Locale)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		target := decision.Location
		if q := r.URL.RawQuery; q != "" {
			target += "?" + q
		}
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	})
}
