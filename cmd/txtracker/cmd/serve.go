package cmd

import (
	"os"
	"os/signal"
	"syscall"

	database "github.com/sebuszqo/TxTracker/internal/db"
	"github.com/sebuszqo/TxTracker/internal/metrics"
	"github.com/sebuszqo/TxTracker/internal/server"
	"github.com/spf13/cobra"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		dbService, err := database.NewDBService(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to connect to database")
			return err
		}
		defer dbService.Close()

		if !skipMigrate {
			if err := dbService.Migrate(ctx); err != nil {
				logger.Error().Err(err).Msg("Migration failed")
				return err
			}
		}

		m := metrics.New()
		scheduler, err := server.StartHealthScheduler(cfg.HealthCheckSchedule, dbService, m, logger)
		if err != nil {
			logger.Error().Err(err).Str("schedule", cfg.HealthCheckSchedule).Msg("Scheduler didn't start")
			return err
		}
		defer scheduler.Stop()

		srv := server.NewServer(server.SQLTables(dbService.DB), dbService, m, logger)
		if err := srv.Run(ctx, cfg.Server); err != nil {
			logger.Error().Err(err).Msg("Server failed")
			return err
		}
		logger.Info().Msg("Server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply migrations on startup")
}
