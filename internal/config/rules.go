// internal/config/rules.go
package config

import (
	"fmt"

	"ledgergate/internal/observability/logging"
	"ledgergate/internal/rbac"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// LoadRuleTable resolves the route permission table for the configuration:
// the file at Rules.Path when set, otherwise the built-in table.
func LoadRuleTable(cfg *Config) (*rbac.Table, error) {
	if cfg.Rules.Path == "" {
		return rbac.DefaultTable(), nil
	}
	table, err := rbac.LoadTable(cfg.Rules.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load route table: %w", err)
	}
	return table, nil
}

// WatchRuleTable watches the rules file and swaps the holder's table when it
// changes. A table that fails to load leaves the previous one serving.
func WatchRuleTable(path string, holder *rbac.Holder, logger *logging.Logger) error {
	logger = logger.WithModule("config.rules")

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to watch route table: %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		table, err := rbac.LoadTable(path)
		if err != nil {
			logger.Error("Route table reload failed, keeping previous table", logging.Err(err))
			return
		}
		holder.Store(table)
		logger.Info("Route table reloaded", "path", path, "routes", len(table.Entries()))
	})
	v.WatchConfig()

	logger.Info("Watching route table", "path", path)
	return nil
}
