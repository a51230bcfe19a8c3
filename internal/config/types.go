// internal/config/types.go
package config

import (
	"net/url"
	"time"
)

// Config represents the complete application configuration. It is read-only
// after Load; the gate never mutates it while serving.
type Config struct {
	// Server holds HTTP server configuration
	Server struct {
		// Address is the address to listen on
		Address string
		// ShutdownTimeout is the maximum time to wait for a graceful shutdown
		ShutdownTimeout time.Duration
	}

	// Metrics holds metrics server configuration
	Metrics struct {
		// Address is the address to listen on for the metrics server
		Address string
	}

	// Upstream holds configuration for the rendering upstream
	Upstream struct {
		// URL is the URL of the upstream service
		URL *url.URL
		// Timeout is the maximum time to wait for upstream responses
		Timeout time.Duration
	}

	// Locales holds the closed locale set
	Locales struct {
		// Tags are the configured locale tags in order
		Tags []string
		// Default is the fallback locale
		Default string
		// RTL lists the right-to-left subset
		RTL []string
	}

	// Cookies names the cookies the gate reads
	Cookies struct {
		// Credential is the JSON credential cookie name
		Credential string
		// User is the JSON user session cookie name
		User string
		// Locale is the locale preference cookie name
		Locale string
	}

	// Rules holds route permission table configuration
	Rules struct {
		// Path is the table file; empty uses the built-in table
		Path string
		// Watch reloads the table when the file changes
		Watch bool
	}

	// Auth holds authentication configuration
	Auth struct {
		// Verify holds strict credential verification configuration
		Verify struct {
			// Enabled turns on signature verification
			Enabled bool
			// Issuer is the OIDC issuer URL
			Issuer string
			// ClientID is the expected audience
			ClientID string
		}
	}

	// Observability holds observability configuration
	Observability struct {
		// LogLevel is the minimum log level to emit
		LogLevel string
	}
}
