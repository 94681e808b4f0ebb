package workers

import (
	"context"
	"time"

	"piwork_backend/internal/logger"
	"piwork_backend/internal/repositories"
)

// NotificationWorker prunes read notifications past the retention window.
// Unread notifications are never deleted.
type NotificationWorker struct {
	notificationRepo repositories.NotificationRepository
	interval         time.Duration
	retention        time.Duration
}

func NewNotificationWorker(notificationRepo repositories.NotificationRepository, cleanupHours, retentionDays int) *NotificationWorker {
	return &NotificationWorker{
		notificationRepo: notificationRepo,
		interval:         time.Duration(cleanupHours) * time.Hour,
		retention:        time.Duration(retentionDays) * 24 * time.Hour,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *NotificationWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopped")
			return
		case <-ticker.C:
			deleted, err := w.notificationRepo.DeleteReadOlderThan(time.Now().Add(-w.retention))
			logger.WorkerLog("notification", "cleanup_read", err)
			if err == nil && deleted > 0 {
				logger.Info("Pruned read notifications", "count", deleted)
			}
		}
	}
}
