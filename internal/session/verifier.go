// internal/session/verifier.go
package session

import (
	"context"
	"fmt"

	"ledgergate/internal/observability/logging"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Verifier checks bearer token signatures against an OIDC issuer. It backs
// the opt-in strict mode; when disabled the gate trusts claims as issued,
// matching the behavior of the application this gate fronts.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
	logger   *logging.Logger
}

// VerifierConfig holds strict-verification configuration.
type VerifierConfig struct {
	// Issuer is the OIDC issuer URL whose keys sign the bearer tokens.
	Issuer string

	// ClientID is the expected audience. Empty skips the audience check.
	ClientID string
}

// NewVerifier discovers the issuer and prepares a token verifier.
func NewVerifier(ctx context.Context, cfg VerifierConfig, logger *logging.Logger) (*Verifier, error) {
	logger = logger.WithModule("session.verifier")

	if cfg.Issuer == "" {
		return nil, fmt.Errorf("strict verification enabled but no issuer provided")
	}

	logger.Debug("Initializing OIDC provider for credential verification", "issuer", cfg.Issuer)
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OIDC provider: %w", err)
	}

	oidcConfig := &oidc.Config{
		ClientID:          cfg.ClientID,
		SkipClientIDCheck: cfg.ClientID == "",
	}

	return &Verifier{
		verifier: provider.Verifier(oidcConfig),
		logger:   logger,
	}, nil
}

// Verify validates the raw token's signature, issuer and audience.
func (v *Verifier) Verify(ctx context.Context, raw string) error {
	if _, err := v.verifier.Verify(ctx, raw); err != nil {
		return fmt.Errorf("token verification failed: %w", err)
	}
	return nil
}
