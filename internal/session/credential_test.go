package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"ledgergate/internal/observability/logging"
	"ledgergate/internal/observability/metrics"
	"ledgergate/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	logger, err := logging.NewLogger("error")
	require.NoError(t, err)
	return NewExtractor(Config{
		CredentialCookie: "token",
		UserCookie:       "user",
		LocaleCookie:     "preferred-locale",
	}, nil, logger, metrics.NewCollector())
}

// makeToken builds an unverified JWT-shaped token from a claims map.
func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return fmt.Sprintf("%s.%s.%s", enc.EncodeToString(header), enc.EncodeToString(payload), enc.EncodeToString([]byte("sig")))
}

// makeCredentialCookie wraps a token in the JSON envelope the login action writes.
func makeCredentialCookie(t *testing.T, token string, extra map[string]any) string {
	t.Helper()
	envelope := map[string]any{"token": token, "refreshToken": "refresh"}
	for k, v := range extra {
		envelope[k] = v
	}
	data, err := json.Marshal(envelope)
	require.NoError(t, err)
	return string(data)
}

func TestExtractAnonymousWhenCookieAbsent(t *testing.T) {
	e := newTestExtractor(t)
	cred := e.Extract(context.Background(), "", "", testNow)
	assert.False(t, cred.LoggedIn())
	assert.Empty(t, cred.Role)
	assert.Empty(t, cred.UserID)
}

// Malformed credential cookies must degrade to anonymous, never panic.
func TestExtractDegradesOnMalformedInput(t *testing.T) {
	e := newTestExtractor(t)

	badPayloadToken := "eyJhbGciOiJIUzI1NiJ9.!!!not-base64!!!.c2ln"

	tests := []struct {
		name   string
		cookie string
	}{
		{"empty string handled upstream", ""},
		{"invalid JSON", "{not json"},
		{"JSON array", `["token"]`},
		{"valid JSON missing token field", `{"refreshToken":"r"}`},
		{"token not a JWT", makeCredentialCookie(t, "just-a-string", nil)},
		{"token with one segment", makeCredentialCookie(t, "abc", nil)},
		{"token with invalid base64 payload", makeCredentialCookie(t, badPayloadToken, nil)},
		{"token payload not JSON", makeCredentialCookie(t, "eyJhbGciOiJIUzI1NiJ9."+base64.RawURLEncoding.EncodeToString([]byte("hi"))+".c2ln", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cred Credential
			require.NotPanics(t, func() {
				cred = e.Extract(context.Background(), tt.cookie, "", testNow)
			})
			assert.False(t, cred.LoggedIn())
			assert.Empty(t, cred.Role)
		})
	}
}

func TestExtractExpiry(t *testing.T) {
	e := newTestExtractor(t)
	token := makeToken(t, map[string]any{"role": "CLIENT", "userId": "u-1"})

	t.Run("expired millisecond timestamp", func(t *testing.T) {
		cookie := makeCredentialCookie(t, token, map[string]any{"expires_at_ts": testNow.Add(-time.Hour).UnixMilli()})
		cred := e.Extract(context.Background(), cookie, "", testNow)
		assert.False(t, cred.LoggedIn())
	})

	t.Run("expired RFC3339 string", func(t *testing.T) {
		cookie := makeCredentialCookie(t, token, map[string]any{"expires_at": testNow.Add(-time.Minute).Format(time.RFC3339)})
		cred := e.Extract(context.Background(), cookie, "", testNow)
		assert.False(t, cred.LoggedIn())
	})

	t.Run("future millisecond timestamp", func(t *testing.T) {
		cookie := makeCredentialCookie(t, token, map[string]any{"expires_at_ts": testNow.Add(time.Hour).UnixMilli()})
		cred := e.Extract(context.Background(), cookie, "", testNow)
		assert.True(t, cred.LoggedIn())
		assert.Equal(t, testNow.Add(time.Hour).UnixMilli(), cred.ExpiresAt.UnixMilli())
	})

	t.Run("millisecond timestamp preferred over string", func(t *testing.T) {
		cookie := makeCredentialCookie(t, token, map[string]any{
			"expires_at":    testNow.Add(-time.Hour).Format(time.RFC3339),
			"expires_at_ts": testNow.Add(time.Hour).UnixMilli(),
		})
		cred := e.Extract(context.Background(), cookie, "", testNow)
		assert.True(t, cred.LoggedIn())
	})

	t.Run("claim expiry applies when envelope has none", func(t *testing.T) {
		expired := makeToken(t, map[string]any{"role": "CLIENT", "exp": testNow.Add(-time.Hour).Unix()})
		cred := e.Extract(context.Background(), makeCredentialCookie(t, expired, nil), "", testNow)
		assert.False(t, cred.LoggedIn())
	})

	t.Run("no expiry anywhere stays logged in", func(t *testing.T) {
		cred := e.Extract(context.Background(), makeCredentialCookie(t, token, nil), "", testNow)
		assert.True(t, cred.LoggedIn())
		assert.True(t, cred.ExpiresAt.IsZero())
	})
}

func TestExtractClaims(t *testing.T) {
	e := newTestExtractor(t)

	t.Run("role and identity", func(t *testing.T) {
		token := makeToken(t, map[string]any{
			"role": "PLATFORM_ADMIN", "userId": "u-42",
			"firstName": "Nadia", "lastName": "Haddad",
		})
		cred := e.Extract(context.Background(), makeCredentialCookie(t, token, nil), "", testNow)
		assert.True(t, cred.LoggedIn())
		assert.Equal(t, rbac.PlatformAdmin, cred.Role)
		assert.True(t, cred.HasRole())
		assert.Equal(t, "u-42", cred.UserID)
		assert.Equal(t, "Nadia", cred.GivenName)
		assert.Equal(t, "Haddad", cred.FamilyName)
	})

	t.Run("sub as identity fallback", func(t *testing.T) {
		token := makeToken(t, map[string]any{"role": "CLIENT", "sub": "subject-7"})
		cred := e.Extract(context.Background(), makeCredentialCookie(t, token, nil), "", testNow)
		assert.Equal(t, "subject-7", cred.UserID)
	})

	t.Run("unknown role degrades to no role but stays logged in", func(t *testing.T) {
		token := makeToken(t, map[string]any{"role": "WIZARD", "userId": "u-1"})
		cred := e.Extract(context.Background(), makeCredentialCookie(t, token, nil), "", testNow)
		assert.True(t, cred.LoggedIn())
		assert.False(t, cred.HasRole())
	})

	t.Run("missing role claim", func(t *testing.T) {
		token := makeToken(t, map[string]any{"userId": "u-1"})
		cred := e.Extract(context.Background(), makeCredentialCookie(t, token, nil), "", testNow)
		assert.True(t, cred.LoggedIn())
		assert.False(t, cred.HasRole())
	})
}

func TestExtractUserCookie(t *testing.T) {
	e := newTestExtractor(t)

	t.Run("session id read best effort", func(t *testing.T) {
		cred := e.Extract(context.Background(), "", `{"sessionId":"s-9","loginTime":"2026-03-15T10:00:00Z"}`, testNow)
		assert.Equal(t, "s-9", cred.SessionID)
		assert.False(t, cred.LoggedIn())
	})

	t.Run("broken user cookie ignored", func(t *testing.T) {
		token := makeToken(t, map[string]any{"role": "CLIENT"})
		cred := e.Extract(context.Background(), makeCredentialCookie(t, token, nil), "{broken", testNow)
		assert.True(t, cred.LoggedIn())
		assert.Empty(t, cred.SessionID)
	})
}

func TestFromRequest(t *testing.T) {
	e := newTestExtractor(t)

	// Browser clients percent-encode the JSON cookie values.
	token := makeToken(t, map[string]any{"role": "BUSINESS_OWNER", "userId": "u-3"})
	r := httptest.NewRequest(http.MethodGet, "/en/dashboard", nil)
	r.Header.Set("Cookie",
		"token="+url.QueryEscape(makeCredentialCookie(t, token, nil))+
			"; user="+url.QueryEscape(`{"sessionId":"s-3"}`)+
			"; preferred-locale=fr")

	cred := e.FromRequest(r, testNow)
	assert.True(t, cred.LoggedIn())
	assert.Equal(t, rbac.BusinessOwner, cred.Role)
	assert.Equal(t, "s-3", cred.SessionID)
	assert.Equal(t, "fr", e.LocaleCookie(r))

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, e.FromRequest(bare, testNow).LoggedIn())
	assert.Empty(t, e.LocaleCookie(bare))
}
