// internal/contextutil/context.go
package contextutil

import (
	"context"

	"ledgergate/internal/session"
)

// Key is a type-safe key for context values
type Key string

const (
	// CredentialKey is the key for the per-request session credential
	CredentialKey Key = "context:credential"

	// LocaleKey is the key for the effective locale tag
	LocaleKey Key = "context:locale"
)

// WithCredential adds the extracted session credential to a context
func WithCredential(ctx context.Context, cred session.Credential) context.Context {
	return context.WithValue(ctx, CredentialKey, cred)
}

// GetCredential retrieves the session credential from a context. The zero
// credential (anonymous) is returned when none was attached.
func GetCredential(ctx context.Context) session.Credential {
	if cred, ok := ctx.Value(CredentialKey).(session.Credential); ok {
		return cred
	}
	return session.Credential{}
}

// WithLocale adds the effective locale tag to a context
func WithLocale(ctx context.Context, tag string) context.Context {
	return context.WithValue(ctx, LocaleKey, tag)
}

// GetLocale retrieves the effective locale tag from a context
func GetLocale(ctx context.Context) string {
	if tag, ok := ctx.Value(LocaleKey).(string); ok {
		return tag
	}
	return ""
}
