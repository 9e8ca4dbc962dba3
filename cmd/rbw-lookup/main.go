package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/lalmeras/rbw-lookup/cmd/rbw-lookup/commands"
	"github.com/lalmeras/rbw-lookup/internal/config"
	"github.com/lalmeras/rbw-lookup/internal/logging"
	"github.com/lalmeras/rbw-lookup/internal/metrics"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Wipe any secret material still held in guarded memory on exit.
	defer memguard.Purge()
	memguard.CatchInterrupt()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		memguard.Purge()
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "rbw-lookup",
		Short: "Resolve credentials from the rbw password store",
		Long: `rbw-lookup resolves credential entries from rbw (the unofficial
Bitwarden CLI) for automation tooling: it maps an entry name, optionally
qualified by folder and field, to exactly one secret value or a clear error.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := logging.New(debug, noColor)

			cfg.Path = configFile
			cfg.Logger = logger

			metrics.Init()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "rbw-lookup.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewGetCommand(cfg),
		commands.NewListCommand(cfg),
		commands.NewDoctorCommand(cfg),
	)

	return rootCmd.Execute()
}
