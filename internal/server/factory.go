// internal/server/factory.go
package server

import (
	"context"
	"fmt"

	"ledgergate/internal/config"
	"ledgergate/internal/gate"
	"ledgergate/internal/locale"
	"ledgergate/internal/observability"
	"ledgergate/internal/observability/logging"
	"ledgergate/internal/proxy"
	"ledgergate/internal/proxy/router"
	"ledgergate/internal/rbac"
	"ledgergate/internal/session"
)

// NewFromConfig creates a new server from configuration
func NewFromConfig(cfg *config.Config) (*Server, error) {
	// Initialize observability
	obs, err := observability.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Logger

	// Build the locale set
	locales, err := locale.NewSet(cfg.Locales.Tags, cfg.Locales.Default, cfg.Locales.RTL)
	if err != nil {
		return nil, fmt.Errorf("invalid locale configuration: %w", err)
	}

	// Build the route permission table and its holder
	table, err := config.LoadRuleTable(cfg)
	if err != nil {
		return nil, err
	}
	holder := rbac.NewHolder(table)

	if cfg.Rules.Watch {
		if err := config.WatchRuleTable(cfg.Rules.Path, holder, logger); err != nil {
			return nil, err
		}
	}

	// Optional strict credential verification
	var verifier *session.Verifier
	if cfg.Auth.Verify.Enabled {
		verifier, err = session.NewVerifier(context.Background(), session.VerifierConfig{
			Issuer:   cfg.Auth.Verify.Issuer,
			ClientID: cfg.Auth.Verify.ClientID,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize credential verifier: %w", err)
		}
		logger.Info("Strict credential verification enabled", "issuer", cfg.Auth.Verify.Issuer)
	}

	// Credential extractor
	extractor := session.NewExtractor(session.Config{
		CredentialCookie: cfg.Cookies.Credential,
		UserCookie:       cfg.Cookies.User,
		LocaleCookie:     cfg.Cookies.Locale,
	}, verifier, logger, obs.Metrics)

	// Gate and middleware
	g := gate.New(locales, holder, logger, obs.Metrics)
	gateMW := gate.NewMiddleware(g, extractor, logger, obs.Metrics)

	// Upstream proxy
	upstream := proxy.New(proxy.Config{
		URL:     cfg.Upstream.URL,
		Timeout: cfg.Upstream.Timeout,
	}, logger, obs.Metrics)
	logger.Info("Proxying allowed requests", "upstream", logging.RedactURL(cfg.Upstream.URL))

	// Router: health + gated catch-all
	mux := router.New(gateMW, upstream, logger)

	// Create complete middleware chain: observability -> gate -> proxy
	handler := obs.Middleware(mux)

	serverConfig := Config{
		Address:         cfg.Server.Address,
		MetricsAddress:  cfg.Metrics.Address,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}

	return New(serverConfig, handler, obs.MetricsHandler(), logger), nil
}
