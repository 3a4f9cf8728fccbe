package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dws-labs/transcript-core/internal/modules/diagnostics"
	pkgcron "github.com/dws-labs/transcript-core/internal/pkg/cron"
	"github.com/dws-labs/transcript-core/internal/pkg/events"
	"go.uber.org/zap"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, a *App, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	scanInterval := time.Duration(a.cfg.Diagnostics.ScanIntervalMinutes) * time.Minute

	sched.Register(pkgcron.Job{
		Name:        "corpus_scan",
		Description: "Scan the transcript corpus for processing issues",
		Interval:    scanInterval,
		Fn: func(ctx context.Context) error {
			report, err := a.scanner.Scan(ctx, diagnostics.ScanOptions{AllUsers: true})
			if err != nil {
				cronLogger.Warn("corpus scan failed", zap.Error(err))
				return err
			}
			cronLogger.Info(fmt.Sprintf("corpus scan done: %d scanned, %d flagged",
				report.Stats.Scanned, report.Stats.Flagged))
			if err := a.pub.Publish(ctx, events.TypeScanCompleted, report.Stats); err != nil {
				cronLogger.Warn("scan event publish failed", zap.Error(err))
			}
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "prune_finished_tasks",
		Description: "Remove finished processing tasks older than 24h",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			if err := a.worker.PruneFinishedTasks(ctx, 24*time.Hour); err != nil {
				cronLogger.Warn("task pruning failed", zap.Error(err))
				return err
			}
			cronLogger.Info("finished tasks pruned")
			return nil
		},
	})
}
