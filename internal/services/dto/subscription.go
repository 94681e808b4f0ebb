package dto

import "piwork_backend/internal/models"

type ChangePlanRequest struct {
	Plan         string `json:"plan" validate:"required,subscription_plan"`
	BillingCycle string `json:"billing_cycle" validate:"omitempty,billing_cycle"`
}

// PlanInfo describes one offered plan for the public listing.
type PlanInfo struct {
	Name         models.SubscriptionPlan `json:"name"`
	MonthlyPrice float64                 `json:"monthly_price"`
	YearlyPrice  float64                 `json:"yearly_price"`
	CaseQuota    int                     `json:"case_quota"`
}

type SubscriptionResponse struct {
	Subscription *models.Subscription      `json:"subscription"`
	Profile      *models.SubscriberProfile `json:"profile"`
}
