package repositories

import (
	"errors"

	"piwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	Create(message *models.Message) error
	FindByCase(caseID string) ([]models.Message, error)
	CountByCase(caseID string) (int64, error)
}

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepositoryImpl) FindByCase(caseID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("case_id = ?", caseID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) CountByCase(caseID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Where("case_id = ?", caseID).Count(&count).Error
	return count, err
}
