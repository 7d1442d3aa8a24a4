// Package cmd provides the txtracker CLI commands.
package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sebuszqo/TxTracker/internal/config"
	"github.com/sebuszqo/TxTracker/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool

	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "txtracker",
	Short: "Bookkeeping service for accounts, categories, tags and transactions",
	Long: `txtracker serves a JSON API over PostgreSQL for personal bookkeeping.

Example:
  txtracker migrate
  txtracker serve --config config.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if debug {
			cfg.LogLevel = "debug"
		}
		logger = logging.New(cfg.LogLevel, cfg.IsDevelopment())

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (environment variables take precedence)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
