package server

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/sebuszqo/TxTracker/internal/metrics"
)

const checkTimeout = 5 * time.Second

// StartHealthScheduler pings the store on schedule and publishes the result
// as the store-up gauge. The first check runs immediately.
func StartHealthScheduler(schedule string, checker HealthChecker, m *metrics.Metrics, logger zerolog.Logger) (*cron.Cron, error) {
	check := func() {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		stats := checker.Health(ctx)
		up := stats["status"] == "up"
		m.SetStoreUp(up)
		if !up {
			logger.Warn().Str("error", stats["error"]).Msg("Database health check failed")
			return
		}
		logger.Debug().Msg("Database health check passed")
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, check); err != nil {
		return nil, err
	}
	check()
	c.Start()
	return c, nil
}
