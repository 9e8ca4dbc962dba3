// Package commands implements the rbw-lookup CLI subcommands.
package commands

import (
	"github.com/lalmeras/rbw-lookup/internal/config"
	"github.com/lalmeras/rbw-lookup/internal/logging"
	"github.com/lalmeras/rbw-lookup/internal/rbw"
)

// newResolver constructs the client and resolver from configuration.
// Each command builds its own instances; nothing is shared process-wide.
func newResolver(cfg *config.Config) (*rbw.Client, *rbw.Resolver) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New(false, false)
	}
	client := rbw.NewClient(cfg.ToolPath(), logger)
	return client, rbw.NewResolver(client, logger)
}

// orDefault returns the flag value, falling back to the configured default.
func orDefault(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}
