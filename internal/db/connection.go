package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/sebuszqo/TxTracker/internal/config"
)

// DBService represents a service that interacts with a database.
type DBService struct {
	DB     *sql.DB
	logger zerolog.Logger
}

// NewDBService opens the pgx-backed pool described by cfg and pings it.
func NewDBService(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*DBService, error) {
	if cfg.ConnectionString == "" {
		return nil, fmt.Errorf("missing DB_CONNECTION_STRING in configuration")
	}

	db, err := sql.Open("pgx", cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("could not open db connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to the database: %w", err)
	}

	return &DBService{DB: db, logger: logger}, nil
}

// Health pings the database and returns a status map suitable for the
// health endpoint.
func (s *DBService) Health(ctx context.Context) map[string]string {
	stats := make(map[string]string)

	if err := s.DB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	dbStats := s.DB.Stats()
	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["open_connections"] = fmt.Sprint(dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprint(dbStats.InUse)
	stats["idle"] = fmt.Sprint(dbStats.Idle)
	return stats
}

func (s *DBService) Close() error {
	s.logger.Info().Msg("Closing database connection")
	return s.DB.Close()
}
