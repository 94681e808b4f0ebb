package models

import "gorm.io/datatypes"

// SubscriberProfile is created lazily on first fetch or role switch.
// CasesRemaining is the entitlement counter; it only moves through the
// entitlement ledger (atomic decrement on case creation, reset on plan change).
type SubscriberProfile struct {
	BaseModel
	UserID           string           `gorm:"not null;uniqueIndex" json:"user_id"`
	SubscriptionPlan SubscriptionPlan `gorm:"type:varchar(20);default:'Basic'" json:"subscription_plan"`
	CasesRemaining   int              `gorm:"not null;default:5;check:cases_remaining >= 0" json:"cases_remaining"`
}

// InvestigatorProfile holds the directory-facing fields of an investigator.
// Rating and ReviewCount are derived aggregates maintained when a review lands.
type InvestigatorProfile struct {
	BaseModel
	UserID          string         `gorm:"not null;uniqueIndex" json:"user_id"`
	Specializations datatypes.JSON `gorm:"type:jsonb" json:"specializations"` // ["surveillance", "background checks"]
	Skills          datatypes.JSON `gorm:"type:jsonb" json:"skills"`
	Bio             string         `json:"bio"`
	Location        string         `json:"location"`
	IsAvailable     bool           `gorm:"default:true" json:"is_available"`
	Rating          float64        `gorm:"default:0" json:"rating"`
	ReviewCount     int            `gorm:"default:0" json:"review_count"`
}
