package dto

import "piwork_backend/internal/models"

// PlatformStats backs the admin dashboard. Plain counts, no derived analytics.
type PlatformStats struct {
	TotalUsers          int64                             `json:"total_users"`
	Subscribers         int64                             `json:"subscribers"`
	Investigators       int64                             `json:"investigators"`
	TotalCases          int64                             `json:"total_cases"`
	CasesByStatus       map[models.CaseStatus]int64       `json:"cases_by_status"`
	SubscriptionsByPlan map[models.SubscriptionPlan]int64 `json:"subscriptions_by_plan"`
}
