// Package dbtest starts a throwaway PostgreSQL for integration tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sebuszqo/TxTracker/internal/config"
	database "github.com/sebuszqo/TxTracker/internal/db"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// NewDBService starts a postgres container, applies the migrations and
// returns a connected service. The container is removed when the test ends.
// Skipped under -short.
func NewDBService(t *testing.T) *database.DBService {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("txtracker"),
		postgres.WithUsername("txtracker"),
		postgres.WithPassword("txtracker"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	cfg := config.Default().Database
	cfg.ConnectionString = connStr

	svc, err := database.NewDBService(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	t.Cleanup(func() { svc.Close() })

	if err := svc.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return svc
}
