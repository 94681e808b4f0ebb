package models

type UserRole string
type UserStatus string
type CaseStatus string
type SubscriptionPlan string
type BillingCycle string
type SubscriptionStatus string

const (
	UserRoleSubscriber   UserRole = "subscriber"
	UserRoleInvestigator UserRole = "investigator"
	UserRoleAdmin        UserRole = "admin"

	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	CaseStatusNew       CaseStatus = "new"
	CaseStatusActive    CaseStatus = "active"
	CaseStatusOnHold    CaseStatus = "on_hold"
	CaseStatusCompleted CaseStatus = "completed"
	CaseStatusCancelled CaseStatus = "cancelled"

	PlanBasic      SubscriptionPlan = "Basic"
	PlanPro        SubscriptionPlan = "Pro"
	PlanEnterprise SubscriptionPlan = "Enterprise"

	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"

	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// Valid reports whether r is one of the known user roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleSubscriber, UserRoleInvestigator, UserRoleAdmin:
		return true
	}
	return false
}

// Valid reports whether s is one of the known case statuses.
func (s CaseStatus) Valid() bool {
	switch s {
	case CaseStatusNew, CaseStatusActive, CaseStatusOnHold, CaseStatusCompleted, CaseStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether a case in status s accepts no further transitions.
func (s CaseStatus) Terminal() bool {
	switch s {
	case CaseStatusCompleted, CaseStatusCancelled:
		return true
	case CaseStatusNew, CaseStatusActive, CaseStatusOnHold:
		return false
	}
	return false
}

// CanTransitionTo reports whether the lifecycle permits moving from s to next.
// The switch is exhaustive over CaseStatus so a new status cannot silently
// fall through to a default branch.
func (s CaseStatus) CanTransitionTo(next CaseStatus) bool {
	switch s {
	case CaseStatusNew:
		return next == CaseStatusActive || next == CaseStatusCancelled
	case CaseStatusActive:
		return next == CaseStatusOnHold || next == CaseStatusCompleted || next == CaseStatusCancelled
	case CaseStatusOnHold:
		return next == CaseStatusActive || next == CaseStatusCancelled
	case CaseStatusCompleted, CaseStatusCancelled:
		return false
	}
	return false
}

// Valid reports whether p is one of the offered subscription plans.
func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanBasic, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// Valid reports whether b is a supported billing cycle.
func (b BillingCycle) Valid() bool {
	switch b {
	case BillingCycleMonthly, BillingCycleYearly:
		return true
	}
	return false
}
