package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"piwork_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification types written by the relay.
const (
	NotificationTypeCaseCreated    = "case_created"
	NotificationTypeCaseAssignment = "case_assignment"
	NotificationTypeCaseUpdated    = "case_updated"
	NotificationTypeNewMessage     = "new_message"
	NotificationTypeNewReview      = "new_review"
	NotificationTypePlanChanged    = "plan_changed"
)

// NotificationCriteria narrows a user's notification listing.
type NotificationCriteria struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	GetUnreadCount(userID string) (int64, error)
	DeleteReadOlderThan(olderThan time.Time) (int64, error)

	// Factory methods for the relay's notification kinds.
	CreateCaseCreatedNotification(subscriberID, caseID, caseTitle string) error
	CreateCaseAssignmentNotification(investigatorID, caseID, caseTitle string) error
	CreateCaseUpdatedNotification(recipientID, caseID, caseTitle string, status models.CaseStatus) error
	CreateNewMessageNotification(recipientID, caseID, senderName string) error
	CreateNewReviewNotification(investigatorID, caseID string, rating int) error
	CreatePlanChangedNotification(subscriberID string, plan models.SubscriptionPlan, casesRemaining int) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := query.
		Order("created_at DESC").
		Limit(criteria.PageSize).
		Offset((criteria.Page - 1) * criteria.PageSize).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(userID, notificationID string) error {
	now := time.Now()
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": &now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) error {
	now := time.Now()
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": &now,
		}).Error
}

func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) DeleteReadOlderThan(olderThan time.Time) (int64, error) {
	res := r.db.
		Where("is_read = ? AND created_at < ?", true, olderThan).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}

// ---------------- Factory methods ----------------

func (r *NotificationRepositoryImpl) CreateCaseCreatedNotification(subscriberID, caseID, caseTitle string) error {
	return r.Create(&models.Notification{
		UserID:  subscriberID,
		Type:    NotificationTypeCaseCreated,
		Title:   "Case Created",
		Message: fmt.Sprintf("Your case %q has been created and is awaiting an investigator.", caseTitle),
		Link:    "/cases/" + caseID,
		Data:    mustJSON(map[string]string{"case_id": caseID}),
	})
}

func (r *NotificationRepositoryImpl) CreateCaseAssignmentNotification(investigatorID, caseID, caseTitle string) error {
	return r.Create(&models.Notification{
		UserID:  investigatorID,
		Type:    NotificationTypeCaseAssignment,
		Title:   "New Case Assignment",
		Message: fmt.Sprintf("You have been assigned to the case %q.", caseTitle),
		Link:    "/cases/" + caseID,
		Data:    mustJSON(map[string]string{"case_id": caseID}),
	})
}

func (r *NotificationRepositoryImpl) CreateCaseUpdatedNotification(recipientID, caseID, caseTitle string, status models.CaseStatus) error {
	return r.Create(&models.Notification{
		UserID:  recipientID,
		Type:    NotificationTypeCaseUpdated,
		Title:   "Case Updated",
		Message: fmt.Sprintf("The case %q was updated (status: %s).", caseTitle, status),
		Link:    "/cases/" + caseID,
		Data:    mustJSON(map[string]string{"case_id": caseID, "status": string(status)}),
	})
}

func (r *NotificationRepositoryImpl) CreateNewMessageNotification(recipientID, caseID, senderName string) error {
	return r.Create(&models.Notification{
		UserID:  recipientID,
		Type:    NotificationTypeNewMessage,
		Title:   "New Message",
		Message: fmt.Sprintf("%s sent you a message.", senderName),
		Link:    "/cases/" + caseID,
		Data:    mustJSON(map[string]string{"case_id": caseID}),
	})
}

func (r *NotificationRepositoryImpl) CreateNewReviewNotification(investigatorID, caseID string, rating int) error {
	return r.Create(&models.Notification{
		UserID:  investigatorID,
		Type:    NotificationTypeNewReview,
		Title:   "New Review",
		Message: fmt.Sprintf("A client left you a %d-star review.", rating),
		Link:    "/cases/" + caseID,
		Data:    mustJSON(map[string]string{"case_id": caseID}),
	})
}

func (r *NotificationRepositoryImpl) CreatePlanChangedNotification(subscriberID string, plan models.SubscriptionPlan, casesRemaining int) error {
	return r.Create(&models.Notification{
		UserID:  subscriberID,
		Type:    NotificationTypePlanChanged,
		Title:   "Subscription Updated",
		Message: fmt.Sprintf("Your plan is now %s with %d cases available.", plan, casesRemaining),
		Link:    "/subscription",
		Data:    mustJSON(map[string]string{"plan": string(plan)}),
	})
}

func mustJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
