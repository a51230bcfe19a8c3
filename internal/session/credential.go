// internal/session/credential.go
package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ledgergate/internal/observability/logging"
	"ledgergate/internal/observability/metrics"
	"ledgergate/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
)

// Extraction results, used as metric labels.
const (
	ResultAuthenticated = "authenticated"
	ResultAnonymous     = "anonymous"
	ResultMalformed     = "malformed"
	ResultExpired       = "expired"
	ResultRejected      = "rejected"
)

// Credential is the per-request view of the caller's session. It is
// reconstructed fresh from cookies on every request and never cached.
type Credential struct {
	// Present indicates a usable, unexpired credential cookie was found.
	// Present == false is "not logged in"; malformed and expired
	// credentials both degrade to it.
	Present bool

	// UserID is the opaque identity reference from the token claims.
	UserID string

	// SessionID is the identity reference from the user cookie, when readable.
	SessionID string

	// Role is the claimed role. Empty when the claim is absent or unknown.
	Role rbac.Role

	// GivenName and FamilyName are display claims carried for the upstream.
	GivenName  string
	FamilyName string

	// ExpiresAt is the credential expiry instant, zero when the credential
	// carries none.
	ExpiresAt time.Time
}

// LoggedIn reports whether the request carries a live credential.
func (c Credential) LoggedIn() bool {
	return c.Present
}

// HasRole reports whether the credential carries a known role claim.
func (c Credential) HasRole() bool {
	return c.Role.Valid()
}

// Config names the cookies the extractor reads.
type Config struct {
	// CredentialCookie is the JSON credential cookie ("token").
	CredentialCookie string

	// UserCookie is the JSON session cookie ("user").
	UserCookie string

	// LocaleCookie is the plain locale preference cookie ("preferred-locale").
	LocaleCookie string
}

// Extractor turns raw cookie values into a Credential. Extraction is a total
// function: every malformed input degrades to the anonymous credential, it
// never fails the request pipeline.
type Extractor struct {
	cfg      Config
	verifier *Verifier
	logger   *logging.Logger
	metrics  *metrics.Collector
}

// NewExtractor creates an extractor. verifier may be nil, in which case token
// claims are trusted without signature verification (the issuer is assumed to
// verify upstream).
func NewExtractor(cfg Config, verifier *Verifier, logger *logging.Logger, metricsCollector *metrics.Collector) *Extractor {
	return &Extractor{
		cfg:      cfg,
		verifier: verifier,
		logger:   logger.WithModule("session"),
		metrics:  metricsCollector,
	}
}

// credentialEnvelope is the JSON shape of the credential cookie as written by
// the application's login action.
type credentialEnvelope struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    string `json:"expires_at"`
	ExpiresAtTS  int64  `json:"expires_at_ts"`
}

// expiry returns the envelope expiry instant, preferring the millisecond
// timestamp over the RFC3339 string. Zero when neither parses.
func (e credentialEnvelope) expiry() time.Time {
	if e.ExpiresAtTS > 0 {
		return time.UnixMilli(e.ExpiresAtTS)
	}
	if e.ExpiresAt != "" {
		if t, err := time.Parse(time.RFC3339, e.ExpiresAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// userEnvelope is the JSON shape of the user cookie.
type userEnvelope struct {
	SessionID string `json:"sessionId"`
	LoginTime string `json:"loginTime"`
}

// tokenClaims are the bearer token payload fields the gate cares about.
type tokenClaims struct {
	Role      string `json:"role"`
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	jwt.RegisteredClaims
}

// FromRequest reads the relevant cookies off the request and extracts the
// credential.
func (e *Extractor) FromRequest(r *http.Request, now time.Time) Credential {
	return e.Extract(r.Context(), cookieValue(r, e.cfg.CredentialCookie), cookieValue(r, e.cfg.UserCookie), now)
}

// LocaleCookie reads the locale preference cookie off the request.
func (e *Extractor) LocaleCookie(r *http.Request) string {
	return decodeCookie(cookieValue(r, e.cfg.LocaleCookie))
}

// Extract builds a Credential from raw cookie values. Absent or broken inputs
// yield the anonymous credential; an expired credential does the same even
// when its claims parsed cleanly.
func (e *Extractor) Extract(ctx context.Context, credentialCookie, userCookie string, now time.Time) Credential {
	cred := Credential{}

	credentialCookie = decodeCookie(credentialCookie)
	userCookie = decodeCookie(userCookie)

	// The user cookie only carries identity metadata; it is best effort and
	// never gates anything.
	if userCookie != "" {
		var user userEnvelope
		if err := json.Unmarshal([]byte(userCookie), &user); err == nil {
			cred.SessionID = user.SessionID
		}
	}

	if credentialCookie == "" {
		e.metrics.RecordCredential(ResultAnonymous)
		return cred
	}

	var envelope credentialEnvelope
	if err := json.Unmarshal([]byte(credentialCookie), &envelope); err != nil || envelope.Token == "" {
		e.logger.Debug("Credential cookie unreadable, treating as anonymous",
			"cookie", logging.RedactCookie(credentialCookie))
		e.metrics.RecordCredential(ResultMalformed)
		return cred
	}

	expiresAt := envelope.expiry()
	if !expiresAt.IsZero() && expiresAt.Before(now) {
		e.logger.Debug("Credential expired, treating as anonymous", "expires_at", expiresAt)
		e.metrics.RecordCredential(ResultExpired)
		return cred
	}

	// Claim extraction only: the payload segment is decoded without checking
	// the signature unless a verifier is configured. See the trust-model note
	// in DESIGN.md.
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(envelope.Token, claims); err != nil {
		e.logger.Debug("Bearer token unparseable, treating as anonymous",
			logging.Err(err), "token", logging.RedactToken(envelope.Token))
		e.metrics.RecordCredential(ResultMalformed)
		return cred
	}

	if e.verifier != nil {
		if err := e.verifier.Verify(ctx, envelope.Token); err != nil {
			e.logger.Info("Bearer token failed strict verification, treating as anonymous",
				logging.Err(err))
			e.metrics.RecordCredential(ResultRejected)
			return cred
		}
	}

	// Token expiry applies when the envelope carried none.
	if expiresAt.IsZero() && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
		if expiresAt.Before(now) {
			e.logger.Debug("Bearer token expired, treating as anonymous", "expires_at", expiresAt)
			e.metrics.RecordCredential(ResultExpired)
			return cred
		}
	}

	cred.Present = true
	cred.ExpiresAt = expiresAt
	cred.GivenName = claims.FirstName
	cred.FamilyName = claims.LastName

	cred.UserID = claims.UserID
	if cred.UserID == "" {
		cred.UserID = claims.Subject
	}

	if role, ok := rbac.Parse(claims.Role); ok {
		cred.Role = role
	}

	e.metrics.RecordCredential(ResultAuthenticated)
	return cred
}

// decodeCookie unescapes percent-encoded cookie values. Browser clients send
// the JSON cookies percent-encoded; values without an escape are returned
// untouched so a literal "+" survives.
func decodeCookie(v string) string {
	if strings.Contains(v, "%") {
		if decoded, err := url.QueryUnescape(v); err == nil {
			return decoded
		}
	}
	return v
}

func cookieValue(r *http.Request, name string) string {
	if name == "" {
		return ""
	}
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
