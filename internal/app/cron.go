package app

import (
	"context"

	"github.com/readshelf/core/internal/config"
	pkgcron "github.com/readshelf/core/internal/pkg/cron"
	"go.uber.org/zap"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, svc *services, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "end_idle_sessions",
		Description: "Close reading sessions idle past the session window",
		Interval:    cfg.Reader.SessionIdle,
		Fn: func(ctx context.Context) error {
			n, err := svc.sessions.EndIdleSessions(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				cronLogger.Debug("idle sessions closed", zap.Int64("count", n))
			}
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "aggregate_reading_history",
		Description: "Fold closed reading sessions into daily history",
		Interval:    cfg.Reader.HistoryInterval,
		Fn: func(ctx context.Context) error {
			if _, err := svc.sessions.EndIdleSessions(ctx); err != nil {
				return err
			}
			n, err := svc.history.AggregateRecent(ctx)
			if err != nil {
				cronLogger.Warn("reading history aggregation failed", zap.Error(err))
				return err
			}
			cronLogger.Info("reading history aggregated", zap.Int("rows", n))
			return nil
		},
	})
}
