package workers

import (
	"context"
	"time"

	"piwork_backend/internal/logger"
	"piwork_backend/internal/repositories"
)

// SubscriptionWorker periodically expires subscriptions whose billing date has
// passed. Expiry only flags the billing record; the case quota is untouched
// until the next plan change.
type SubscriptionWorker struct {
	subscriptionRepo repositories.SubscriptionRepository
	interval         time.Duration
}

func NewSubscriptionWorker(subscriptionRepo repositories.SubscriptionRepository, intervalHours int) *SubscriptionWorker {
	return &SubscriptionWorker{
		subscriptionRepo: subscriptionRepo,
		interval:         time.Duration(intervalHours) * time.Hour,
	}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *SubscriptionWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Subscription worker stopped")
			return
		case <-ticker.C:
			expired, err := w.subscriptionRepo.ExpireOverdue(time.Now())
			logger.WorkerLog("subscription", "expire_overdue", err)
			if err == nil && expired > 0 {
				logger.Info("Marked subscriptions as expired", "count", expired)
			}
		}
	}
}
