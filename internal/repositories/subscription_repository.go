package repositories

import (
	"errors"
	"time"

	"piwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionRepository interface {
	Create(subscription *models.Subscription) error
	// FindActiveByUser returns the single active billing record. Uniqueness is
	// enforced by this status filter, not by a DB constraint.
	FindActiveByUser(userID string) (*models.Subscription, error)
	CancelActive(userID string, at time.Time) error
	// ExpireOverdue marks active subscriptions past their billing date as
	// expired and returns how many rows changed.
	ExpireOverdue(now time.Time) (int64, error)
	CountByPlan() (map[models.SubscriptionPlan]int64, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) Create(subscription *models.Subscription) error {
	return r.db.Create(subscription).Error
}

func (r *SubscriptionRepositoryImpl) FindActiveByUser(userID string) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Order("created_at DESC").
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

func (r *SubscriptionRepositoryImpl) CancelActive(userID string, at time.Time) error {
	return r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Updates(map[string]interface{}{
			"status":       models.SubscriptionStatusCancelled,
			"cancelled_at": &at,
		}).Error
}

func (r *SubscriptionRepositoryImpl) ExpireOverdue(now time.Time) (int64, error) {
	res := r.db.Model(&models.Subscription{}).
		Where("status = ? AND next_billing_date < ?", models.SubscriptionStatusActive, now).
		Update("status", models.SubscriptionStatusExpired)
	return res.RowsAffected, res.Error
}

func (r *SubscriptionRepositoryImpl) CountByPlan() (map[models.SubscriptionPlan]int64, error) {
	type row struct {
		Plan  models.SubscriptionPlan
		Count int64
	}

	var rows []row
	err := r.db.Model(&models.Subscription{}).
		Select("plan, count(*) as count").
		Where("status = ?", models.SubscriptionStatusActive).
		Group("plan").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.SubscriptionPlan]int64, len(rows))
	for _, row := range rows {
		counts[row.Plan] = row.Count
	}
	return counts, nil
}
