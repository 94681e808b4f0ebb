package repositories

import (
	"errors"

	"piwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// InvestigatorFilter narrows the investigator directory listing.
type InvestigatorFilter struct {
	AvailableOnly bool   `form:"available_only"`
	Location      string `form:"location"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
}

type ProfileRepository interface {
	// Subscriber side
	CreateSubscriberProfile(profile *models.SubscriberProfile) error
	FindSubscriberProfile(userID string) (*models.SubscriberProfile, error)
	UpdateSubscriberPlan(userID string, plan models.SubscriptionPlan, casesRemaining int) error
	// DecrementCasesRemaining performs a single conditional decrement
	// (cases_remaining > 0) and reports whether a row was updated. This is the
	// quota gate: two concurrent case creations cannot both pass it.
	DecrementCasesRemaining(userID string) (bool, error)

	// Investigator side
	CreateInvestigatorProfile(profile *models.InvestigatorProfile) error
	FindInvestigatorProfile(userID string) (*models.InvestigatorProfile, error)
	UpdateInvestigatorProfile(profile *models.InvestigatorProfile) error
	SetAvailability(userID string, available bool) error
	FindInvestigators(filter InvestigatorFilter) ([]models.InvestigatorProfile, int64, error)
	// ApplyReviewRating folds one new rating into the stored aggregate.
	ApplyReviewRating(investigatorID string, rating int) error
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

// ---------------- Subscriber ----------------

func (r *ProfileRepositoryImpl) CreateSubscriberProfile(profile *models.SubscriberProfile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindSubscriberProfile(userID string) (*models.SubscriberProfile, error) {
	var profile models.SubscriberProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateSubscriberPlan(userID string, plan models.SubscriptionPlan, casesRemaining int) error {
	res := r.db.Model(&models.SubscriberProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"subscription_plan": plan,
			"cases_remaining":   casesRemaining,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) DecrementCasesRemaining(userID string) (bool, error) {
	res := r.db.Model(&models.SubscriberProfile{}).
		Where("user_id = ? AND cases_remaining > 0", userID).
		UpdateColumn("cases_remaining", gorm.Expr("cases_remaining - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ---------------- Investigator ----------------

func (r *ProfileRepositoryImpl) CreateInvestigatorProfile(profile *models.InvestigatorProfile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindInvestigatorProfile(userID string) (*models.InvestigatorProfile, error) {
	var profile models.InvestigatorProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateInvestigatorProfile(profile *models.InvestigatorProfile) error {
	return r.db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) SetAvailability(userID string, available bool) error {
	res := r.db.Model(&models.InvestigatorProfile{}).
		Where("user_id = ?", userID).
		Update("is_available", available)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) FindInvestigators(filter InvestigatorFilter) ([]models.InvestigatorProfile, int64, error) {
	query := r.db.Model(&models.InvestigatorProfile{})

	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.InvestigatorProfile
	err := query.
		Order("rating DESC, review_count DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&profiles).Error
	return profiles, total, err
}

func (r *ProfileRepositoryImpl) ApplyReviewRating(investigatorID string, rating int) error {
	res := r.db.Model(&models.InvestigatorProfile{}).
		Where("user_id = ?", investigatorID).
		Updates(map[string]interface{}{
			"rating":       gorm.Expr("(rating * review_count + ?) / (review_count + 1)", rating),
			"review_count": gorm.Expr("review_count + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
