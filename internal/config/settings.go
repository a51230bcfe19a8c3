// internal/config/settings.go
package config

import "github.com/spf13/viper"

// SettingType represents the type of a setting
type SettingType string

const (
	// String type for string settings
	String SettingType = "string"
	// Bool type for boolean settings
	Bool SettingType = "bool"
	// StringSlice type for string slice settings
	StringSlice SettingType = "stringSlice"
)

// Setting defines a configuration setting
type Setting struct {
	// Name is the name of the setting
	Name string
	// Short is a short description of the setting
	Short string
	// Type is the type of the setting
	Type SettingType
	// Default is the default value of the setting
	Default interface{}
	// Env is the environment variable name for the setting
	Env string
	// Required indicates whether the setting is required
	Required bool
}

// SettingList is a list of settings
type SettingList []Setting

// PopulateViperDefaults sets default values for all settings in Viper
func (sl SettingList) PopulateViperDefaults(v *viper.Viper) {
	for _, s := range sl {
		v.SetDefault(s.Name, s.Default)
	}
}

// Settings defines all application settings
var Settings = SettingList{
	// Server settings
	{
		Name:    "SERVER_ADDR",
		Short:   "Address on which the server listens",
		Type:    String,
		Default: ":8080",
		Env:     "SERVER_ADDR",
	},
	{
		Name:    "METRICS_ADDR",
		Short:   "Address on which the metrics server listens",
		Type:    String,
		Default: ":9090",
		Env:     "METRICS_ADDR",
	},
	{
		Name:    "SHUTDOWN_TIMEOUT",
		Short:   "Maximum time to wait for graceful shutdown",
		Type:    String,
		Default: "30s",
		Env:     "SHUTDOWN_TIMEOUT",
	},

	// Upstream settings
	{
		Name:     "UPSTREAM_URL",
		Short:    "URL of the rendering upstream",
		Type:     String,
		Default:  "",
		Env:      "UPSTREAM_URL",
		Required: true,
	},
	{
		Name:    "UPSTREAM_TIMEOUT",
		Short:   "Timeout for upstream requests",
		Type:    String,
		Default: "30s",
		Env:     "UPSTREAM_TIMEOUT",
	},

	// Locale settings
	{
		Name:    "LOCALES",
		Short:   "Locales the platform serves",
		Type:    StringSlice,
		Default: []string{"en", "fr", "ar"},
		Env:     "LOCALES",
	},
	{
		Name:    "DEFAULT_LOCALE",
		Short:   "Locale used when negotiation yields nothing",
		Type:    String,
		Default: "en",
		Env:     "DEFAULT_LOCALE",
	},
	{
		Name:    "RTL_LOCALES",
		Short:   "Locales rendered right-to-left",
		Type:    StringSlice,
		Default: []string{"ar"},
		Env:     "RTL_LOCALES",
	},

	// Cookie settings
	{
		Name:    "COOKIE_CREDENTIAL",
		Short:   "Name of the JSON credential cookie",
		Type:    String,
		Default: "token",
		Env:     "COOKIE_CREDENTIAL",
	},
	{
		Name:    "COOKIE_USER",
		Short:   "Name of the JSON user session cookie",
		Type:    String,
		Default: "user",
		Env:     "COOKIE_USER",
	},
	{
		Name:    "COOKIE_LOCALE",
		Short:   "Name of the locale preference cookie",
		Type:    String,
		Default: "preferred-locale",
		Env:     "COOKIE_LOCALE",
	},

	// Route permission table
	{
		Name:    "RULES_PATH",
		Short:   "Path to the route permission table file (empty = built-in table)",
		Type:    String,
		Default: "",
		Env:     "RULES_PATH",
	},
	{
		Name:    "RULES_WATCH",
		Short:   "Reload the route permission table when the file changes",
		Type:    Bool,
		Default: false,
		Env:     "RULES_WATCH",
	},

	// Authentication: strict credential verification
	{
		Name:    "AUTH_VERIFY_ENABLED",
		Short:   "Verify bearer token signatures against an OIDC issuer",
		Type:    Bool,
		Default: false,
		Env:     "AUTH_VERIFY_ENABLED",
	},
	{
		Name:    "AUTH_VERIFY_ISSUER",
		Short:   "OIDC issuer for strict verification",
		Type:    String,
		Default: "",
		Env:     "AUTH_VERIFY_ISSUER",
	},
	{
		Name:    "AUTH_VERIFY_CLIENT_ID",
		Short:   "Expected audience for strict verification (empty = skip)",
		Type:    String,
		Default: "",
		Env:     "AUTH_VERIFY_CLIENT_ID",
	},

	// Observability
	{
		Name:    "LOG_LEVEL",
		Short:   "Logging level",
		Type:    String,
		Default: "info",
		Env:     "LOG_LEVEL",
	},
}
