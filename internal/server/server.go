// Package server wires the entity handlers, health endpoints and metrics
// into one HTTP server.
package server

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sebuszqo/TxTracker/internal/accounts"
	"github.com/sebuszqo/TxTracker/internal/categories"
	"github.com/sebuszqo/TxTracker/internal/config"
	"github.com/sebuszqo/TxTracker/internal/ledger"
	"github.com/sebuszqo/TxTracker/internal/metrics"
	"github.com/sebuszqo/TxTracker/internal/tags"
	"github.com/sebuszqo/TxTracker/internal/transactions"
)

type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

// Tables are the persistence ports for the four collections.
type Tables struct {
	Accounts     ledger.Table[accounts.Account]
	Categories   ledger.Table[categories.Category]
	Tags         ledger.Table[tags.Tag]
	Transactions ledger.Table[transactions.Transaction]
}

func SQLTables(db *sql.DB) Tables {
	return Tables{
		Accounts:     accounts.NewTable(db),
		Categories:   categories.NewTable(db),
		Tags:         tags.NewTable(db),
		Transactions: transactions.NewTable(db),
	}
}

type Server struct {
	router  *http.ServeMux
	health  HealthChecker
	metrics *metrics.Metrics
	logger  zerolog.Logger

	accountHandler     *accounts.Handler
	categoryHandler    *categories.Handler
	tagHandler         *tags.Handler
	transactionHandler *transactions.Handler
}

func NewServer(tables Tables, health HealthChecker, m *metrics.Metrics, logger zerolog.Logger) *Server {
	s := &Server{
		router:  http.NewServeMux(),
		health:  health,
		metrics: m,
		logger:  logger,

		accountHandler:     accounts.NewHandler(accounts.NewRepository(tables.Accounts), RespondJSON, RespondError, &logger),
		categoryHandler:    categories.NewHandler(categories.NewRepository(tables.Categories), RespondJSON, RespondError, &logger),
		tagHandler:         tags.NewHandler(tags.NewRepository(tables.Tags), RespondJSON, RespondError, &logger),
		transactionHandler: transactions.NewHandler(transactions.NewRepository(tables.Transactions), RespondJSON, RespondError, &logger),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	accounts.RegisterRoutes(s.router, s.accountHandler)
	categories.RegisterRoutes(s.router, s.categoryHandler)
	tags.RegisterRoutes(s.router, s.tagHandler)
	transactions.RegisterRoutes(s.router, s.transactionHandler)

	s.router.HandleFunc("GET /api/ready", handleReady)
	s.router.HandleFunc("GET /api/health", s.handleHealth)
	s.router.Handle("GET /metrics", s.metrics.Handler())

	s.router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		RespondError(w, http.StatusNotFound, "Path not found")
	})
}

func (s *Server) Handler() http.Handler {
	return observe(s.router, s.logger, s.metrics)
}

// Run serves on cfg.Addr() until ctx is cancelled, then drains in-flight requests
// for at most cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.health.Health(r.Context())
	if stats["status"] != "up" {
		RespondJSON(w, http.StatusServiceUnavailable, stats)
		return
	}
	RespondJSON(w, http.StatusOK, stats)
}
