package logging

import (
	"fmt"
	"log/slog"
	"net/url"
)

// RedactedURL wraps a url.URL for logging without exposing sensitive information
type RedactedURL struct {
	url *url.URL
}

// LogValue implements slog.LogValuer to avoid revealing passwords
func (u RedactedURL) LogValue() slog.Value {
	return slog.StringValue(u.url.Redacted())
}

// RedactURL returns a safely loggable URL value
func RedactURL(url *url.URL) RedactedURL {
	return RedactedURL{url: url}
}

// RedactedToken is a bearer token or credential cookie value for safe logging.
// Only a short prefix survives; enough to correlate, never enough to replay.
type RedactedToken string

// LogValue implements slog.LogValuer so raw credential material never lands in logs
func (t RedactedToken) LogValue() slog.Value {
	if t == "" {
		return slog.StringValue("<empty>")
	}
	const keep = 6
	if len(t) <= keep {
		return slog.StringValue(fmt.Sprintf("<redacted len=%d>", len(t)))
	}
	return slog.StringValue(fmt.Sprintf("%s…<redacted len=%d>", string(t[:keep]), len(t)))
}

// RedactToken returns a safely loggable token value
func RedactToken(s string) RedactedToken {
	return RedactedToken(s)
}

// RedactedCookie records only the presence and size of a cookie value.
type RedactedCookie string

// LogValue implements slog.LogValuer
func (c RedactedCookie) LogValue() slog.Value {
	if c == "" {
		return slog.StringValue("<absent>")
	}
	return slog.StringValue(fmt.Sprintf("<present len=%d>", len(c)))
}

// RedactCookie returns a safely loggable cookie value
func RedactCookie(s string) RedactedCookie {
	return RedactedCookie(s)
}
