package services

import (
	"time"

	"piwork_backend/internal/logger"
	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"
	"piwork_backend/internal/services/dto"
	"piwork_backend/pkg/apperrors"
)

type MessageService interface {
	PostMessage(caseID, senderID string, req *dto.PostMessageRequest) (*models.Message, error)
	ListMessages(caseID, actorID string, role models.UserRole) ([]models.Message, error)
}

type messageService struct {
	caseRepo         repositories.CaseRepository
	messageRepo      repositories.MessageRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewMessageService(
	caseRepo repositories.CaseRepository,
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) MessageService {
	return &messageService{
		caseRepo:         caseRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// PostMessage appends to the case thread. The sender must be a case party and
// the case must have both parties: a message with nobody to receive it is
// rejected, not queued.
func (s *messageService) PostMessage(caseID, senderID string, req *dto.PostMessageRequest) (*models.Message, error) {
	kase, err := s.caseRepo.FindByID(caseID)
	if err != nil {
		if err == repositories.ErrCaseNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !kase.IsParty(senderID) {
		return nil, apperrors.NewForbiddenError("Only case parties may post messages")
	}

	receiverID, ok := kase.Counterparty(senderID)
	if !ok {
		return nil, apperrors.ErrNoRecipient()
	}

	message := &models.Message{
		CaseID:   caseID,
		SenderID: senderID,
		Content:  req.Content,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.caseRepo.TouchLastActivity(caseID, time.Now()); err != nil {
		logger.Warn("failed to touch case activity", "case_id", caseID, "error", err)
	}

	senderName := "A case party"
	if sender, err := s.userRepo.FindByID(senderID); err == nil && sender.FullName != "" {
		senderName = sender.FullName
	}

	// At-most-once; a failed notification never unwinds the message.
	if err := s.notificationRepo.CreateNewMessageNotification(receiverID, caseID, senderName); err != nil {
		logger.Warn("notification write failed", "error", err)
	}

	return message, nil
}

func (s *messageService) ListMessages(caseID, actorID string, role models.UserRole) ([]models.Message, error) {
	kase, err := s.caseRepo.FindByID(caseID)
	if err != nil {
		if err == repositories.ErrCaseNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !kase.IsParty(actorID) && role != models.UserRoleAdmin {
		return nil, apperrors.NewForbiddenError("You are not a party to this case")
	}

	messages, err := s.messageRepo.FindByCase(caseID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return messages, nil
}
