// internal/gate/gate.go
package gate

import (
	"strings"

	"ledgergate/internal/locale"
	"ledgergate/internal/observability/logging"
	"ledgergate/internal/observability/metrics"
	"ledgergate/internal/rbac"
)

// Gate is the access decision engine. All of its inputs are immutable after
// startup except the route table, which is swapped atomically through the
// holder; evaluation itself holds no mutable state, so it is safe for any
// number of concurrent requests.
type Gate struct {
	locales *locale.Set
	rules   *rbac.Holder
	logger  *logging.Logger
	metrics *metrics.Collector
}

// New creates a gate over the given locale set and route table holder.
func New(locales *locale.Set, rules *rbac.Holder, logger *logging.Logger, metricsCollector *metrics.Collector) *Gate {
	return &Gate{
		locales: locales,
		rules:   rules,
		logger:  logger.WithModule("gate"),
		metrics: metricsCollector,
	}
}

// Request carries the per-request inputs the decision engine needs. The
// middleware fills it from the bypass filter, extractor and resolver outputs.
type Request struct {
	// Path is the raw request path.
	Path string

	// Locale is the effective locale.
	Locale string

	// StrippedPath is the path with any locale prefix removed.
	StrippedPath string

	// HasPathLocale indicates the path carried a valid locale prefix.
	HasPathLocale bool

	// LoggedIn indicates a usable, unexpired credential was presented.
	LoggedIn bool

	// Role is the claimed role, empty when absent or unknown.
	Role rbac.Role
}

// Evaluate produces exactly one decision for the request, applying rules in
// fixed precedence: root canonicalization, auth-page shortcut, RBAC, locale
// canonicalization, allow. A panic anywhere inside resolves to the most
// restrictive outcome, a login redirect, never a failed request.
func (g *Gate) Evaluate(req Request) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("Gate evaluation panicked, degrading to login redirect",
				"panic", r, "path", req.Path)
			tag := req.Locale
			if tag == "" || !g.locales.Contains(tag) {
				tag = g.locales.Default()
			}
			d = Decision{
				Outcome:  RedirectToLogin,
				Locale:   tag,
				Location: "/" + tag + "/login",
			}
		}
	}()

	// Root canonicalization applies to everyone, logged in or not; it is not
	// an authorization step.
	if req.Path == "" || req.Path == "/" {
		return Decision{
			Outcome:  RedirectToLocale,
			Locale:   req.Locale,
			Location: "/" + req.Locale,
		}
	}

	// Auth pages win over locale redirection so a logged-in user never loops
	// between /login and its locale-prefixed form.
	if last := lastSegment(req.Path); last == "login" || last == "register" {
		if req.LoggedIn {
			return Decision{
				Outcome:  RedirectToLocale,
				Locale:   req.Locale,
				Location: "/" + req.Locale + "/",
			}
		}
		return Decision{Outcome: Allow, Locale: req.Locale}
	}

	// RBAC runs on the locale-stripped path, so an unauthenticated hit on a
	// protected prefix goes straight to login in a single redirect even when
	// the path lacked a locale.
	if entry, ok := g.rules.Load().Match(req.StrippedPath); ok {
		if !req.LoggedIn {
			return Decision{
				Outcome:  RedirectToLogin,
				Locale:   req.Locale,
				Location: "/" + req.Locale + "/login",
			}
		}
		if !req.Role.Valid() || !entry.Permits(req.Role) {
			return Decision{
				Outcome:  RedirectToUnauthorized,
				Locale:   req.Locale,
				Location: "/" + req.Locale + "/unauthorized",
			}
		}
	}

	if !req.HasPathLocale {
		return Decision{
			Outcome:  RedirectToLocale,
			Locale:   req.Locale,
			Location: locale.Prefixed(req.Locale, req.Path),
		}
	}

	return Decision{Outcome: Allow, Locale: req.Locale}
}

func lastSegment(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return ""
	}
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
