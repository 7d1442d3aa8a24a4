package cmd

import (
	database "github.com/sebuszqo/TxTracker/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbService, err := database.NewDBService(cmd.Context(), cfg.Database, logger)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to connect to database")
			return err
		}
		defer dbService.Close()

		if err := dbService.Migrate(cmd.Context()); err != nil {
			logger.Error().Err(err).Msg("Migration failed")
			return err
		}
		logger.Info().Msg("Database is up to date")
		return nil
	},
}
