// Package entitlement owns the subscriber quota rules: how plans translate to
// case allowances and how case creation consumes them.
package entitlement

import (
	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"
	"piwork_backend/pkg/apperrors"
)

// UnlimitedSentinel is the Enterprise allowance. It is a large cap, not true
// infinity; the counter still decrements per case.
const UnlimitedSentinel = 999

var planQuotas = map[models.SubscriptionPlan]int{
	models.PlanBasic:      5,
	models.PlanPro:        20,
	models.PlanEnterprise: UnlimitedSentinel,
}

// QuotaFor returns the case allowance granted by a plan.
func QuotaFor(plan models.SubscriptionPlan) (int, bool) {
	quota, ok := planQuotas[plan]
	return quota, ok
}

// Ledger gates case creation by remaining quota and translates plan changes
// into quota resets.
type Ledger struct {
	profiles repositories.ProfileRepository
}

func NewLedger(profiles repositories.ProfileRepository) *Ledger {
	return &Ledger{profiles: profiles}
}

// CanCreateCase reports whether the profile has quota left.
func (l *Ledger) CanCreateCase(profile *models.SubscriberProfile) bool {
	return profile.CasesRemaining > 0
}

// OnCaseCreated consumes one unit of quota. The decrement is a single
// conditional UPDATE (cases_remaining > 0), so concurrent creations cannot
// both succeed on the last unit.
func (l *Ledger) OnCaseCreated(userID string) error {
	decremented, err := l.profiles.DecrementCasesRemaining(userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !decremented {
		return apperrors.ErrQuotaExceeded()
	}
	return nil
}

// OnPlanChanged sets the new plan and resets the quota to the plan's full
// allowance. No rollover and no proration: downgrading mid-cycle still resets
// immediately.
func (l *Ledger) OnPlanChanged(userID string, newPlan models.SubscriptionPlan) (*models.SubscriberProfile, error) {
	quota, ok := QuotaFor(newPlan)
	if !ok {
		return nil, apperrors.ErrInvalidPlan(string(newPlan))
	}

	if err := l.profiles.UpdateSubscriberPlan(userID, newPlan, quota); err != nil {
		if err == repositories.ErrProfileNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return l.profiles.FindSubscriberProfile(userID)
}
