package models

import "time"

// Subscription is the billing record, separate from the quota fields on
// SubscriberProfile. At most one row per user is active at a time; that is
// enforced by the query filter on status, not by a DB constraint.
type Subscription struct {
	BaseModel
	UserID          string             `gorm:"not null;index" json:"user_id"`
	Plan            SubscriptionPlan   `gorm:"type:varchar(20);not null" json:"plan"`
	Amount          float64            `gorm:"not null" json:"amount"`
	Currency        string             `gorm:"default:'USD'" json:"currency"`
	BillingCycle    BillingCycle       `gorm:"type:varchar(20);default:'monthly'" json:"billing_cycle"`
	Status          SubscriptionStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	StartDate       time.Time          `json:"start_date"`
	NextBillingDate time.Time          `json:"next_billing_date"`
	CancelledAt     *time.Time         `json:"cancelled_at"`
}
