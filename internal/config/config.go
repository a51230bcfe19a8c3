// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load loads the configuration from all sources and returns the merged result
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	Settings.PopulateViperDefaults(v)

	// Set up environment variable handling
	v.SetEnvPrefix("LEDGERGATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Load from config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	config := &Config{}

	// Populate server configuration
	config.Server.Address = v.GetString("SERVER_ADDR")
	shutdownTimeout, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	config.Server.ShutdownTimeout = shutdownTimeout

	// Populate metrics configuration
	config.Metrics.Address = v.GetString("METRICS_ADDR")

	// Populate upstream configuration
	upstreamURL, err := url.Parse(v.GetString("UPSTREAM_URL"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL: %w", err)
	}
	config.Upstream.URL = upstreamURL

	upstreamTimeout, err := time.ParseDuration(v.GetString("UPSTREAM_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream timeout: %w", err)
	}
	config.Upstream.Timeout = upstreamTimeout

	// Populate locale configuration
	config.Locales.Tags = v.GetStringSlice("LOCALES")
	config.Locales.Default = v.GetString("DEFAULT_LOCALE")
	config.Locales.RTL = v.GetStringSlice("RTL_LOCALES")

	// Populate cookie configuration
	config.Cookies.Credential = v.GetString("COOKIE_CREDENTIAL")
	config.Cookies.User = v.GetString("COOKIE_USER")
	config.Cookies.Locale = v.GetString("COOKIE_LOCALE")

	// Populate route table configuration
	config.Rules.Path = v.GetString("RULES_PATH")
	config.Rules.Watch = v.GetBool("RULES_WATCH")

	// Populate authentication configuration
	config.Auth.Verify.Enabled = v.GetBool("AUTH_VERIFY_ENABLED")
	config.Auth.Verify.Issuer = v.GetString("AUTH_VERIFY_ISSUER")
	config.Auth.Verify.ClientID = v.GetString("AUTH_VERIFY_CLIENT_ID")

	// Populate observability configuration
	config.Observability.LogLevel = v.GetString("LOG_LEVEL")

	// Validate the configuration
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig performs validation on the loaded configuration
func validateConfig(cfg *Config) error {
	if cfg.Upstream.URL == nil || cfg.Upstream.URL.String() == "" {
		return fmt.Errorf("upstream URL is required")
	}
	if !cfg.Upstream.URL.IsAbs() {
		return fmt.Errorf("upstream URL must be absolute: %s", cfg.Upstream.URL)
	}

	if len(cfg.Locales.Tags) == 0 {
		return fmt.Errorf("at least one locale is required")
	}
	if cfg.Locales.Default == "" {
		return fmt.Errorf("default locale is required")
	}

	if cfg.Cookies.Credential == "" {
		return fmt.Errorf("credential cookie name is required")
	}
	if cfg.Cookies.Locale == "" {
		return fmt.Errorf("locale cookie name is required")
	}

	if cfg.Rules.Watch && cfg.Rules.Path == "" {
		return fmt.Errorf("rules watching requires a rules path")
	}

	if cfg.Auth.Verify.Enabled && cfg.Auth.Verify.Issuer == "" {
		return fmt.Errorf("verification issuer is required when strict verification is enabled")
	}

	return nil
}
