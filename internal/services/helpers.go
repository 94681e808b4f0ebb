package services

import (
	"encoding/json"

	"piwork_backend/internal/entitlement"
	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"

	"gorm.io/datatypes"
)

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}

// ensureSubscriberProfile returns the subscriber profile, creating it lazily
// with the Basic plan defaults on first access.
func ensureSubscriberProfile(profiles repositories.ProfileRepository, userID string) (*models.SubscriberProfile, error) {
	profile, err := profiles.FindSubscriberProfile(userID)
	if err == nil {
		return profile, nil
	}
	if err != repositories.ErrProfileNotFound {
		return nil, err
	}

	quota, _ := entitlement.QuotaFor(models.PlanBasic)
	profile = &models.SubscriberProfile{
		UserID:           userID,
		SubscriptionPlan: models.PlanBasic,
		CasesRemaining:   quota,
	}
	if err := profiles.CreateSubscriberProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ensureInvestigatorProfile mirrors ensureSubscriberProfile for investigators.
func ensureInvestigatorProfile(profiles repositories.ProfileRepository, userID string) (*models.InvestigatorProfile, error) {
	profile, err := profiles.FindInvestigatorProfile(userID)
	if err == nil {
		return profile, nil
	}
	if err != repositories.ErrProfileNotFound {
		return nil, err
	}

	profile = &models.InvestigatorProfile{
		UserID:      userID,
		IsAvailable: true,
	}
	if err := profiles.CreateInvestigatorProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func toJSONList(items []string) datatypes.JSON {
	if items == nil {
		return nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
