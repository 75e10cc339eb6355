package worker

import (
	"context"
	"time"

	"ticket-office/internal/usecase"

	"go.uber.org/zap"
)

// BackupWorker runs the snapshot job on a fixed interval, independently of
// request traffic.
type BackupWorker struct {
	backup   usecase.BackupService
	interval time.Duration
	log      *zap.Logger
}

func NewBackupWorker(backup usecase.BackupService, interval time.Duration, log *zap.Logger) *BackupWorker {
	return &BackupWorker{
		backup:   backup,
		interval: interval,
		log:      log.With(zap.String("worker", "backup")),
	}
}

func (w *BackupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("Backup worker started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Backup worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *BackupWorker) runOnce(ctx context.Context) {
	start := time.Now()

	dest, err := w.backup.Run(ctx)
	if err != nil {
		w.log.Error("Backup run failed", zap.Error(err))
		return
	}

	w.log.Info("Backup run completed",
		zap.String("dest", dest),
		zap.Duration("duration", time.Since(start)),
	)
}
