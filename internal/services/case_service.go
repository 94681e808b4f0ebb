package services

import (
	"time"

	"piwork_backend/internal/email"
	"piwork_backend/internal/entitlement"
	"piwork_backend/internal/logger"
	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"
	"piwork_backend/internal/services/dto"
	"piwork_backend/pkg/apperrors"
)

type CaseService interface {
	CreateCase(subscriberID string, req *dto.CreateCaseRequest) (*models.Case, error)
	ListCases(userID string, role models.UserRole, page, pageSize int) (*dto.CaseListResponse, error)
	GetCase(caseID, actorID string, role models.UserRole) (*dto.CaseDetailResponse, error)
	UpdateCase(caseID, actorID string, role models.UserRole, req *dto.UpdateCaseRequest) (*models.Case, error)
	AssignInvestigator(caseID, investigatorID, actorID string) (*models.Case, error)
	DeleteCase(caseID, actorID string) error
}

type caseService struct {
	caseRepo         repositories.CaseRepository
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	notificationRepo repositories.NotificationRepository
	ledger           *entitlement.Ledger
	emailSvc         email.Provider
}

func NewCaseService(
	caseRepo repositories.CaseRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	notificationRepo repositories.NotificationRepository,
	ledger *entitlement.Ledger,
	emailSvc email.Provider,
) CaseService {
	return &caseService{
		caseRepo:         caseRepo,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		ledger:           ledger,
		emailSvc:         emailSvc,
	}
}

// CreateCase gates on the entitlement ledger, consumes one quota unit and
// opens the case in status "new".
func (s *caseService) CreateCase(subscriberID string, req *dto.CreateCaseRequest) (*models.Case, error) {
	profile, err := ensureSubscriberProfile(s.profileRepo, subscriberID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if !s.ledger.CanCreateCase(profile) {
		return nil, apperrors.ErrQuotaExceeded()
	}
	if err := s.ledger.OnCaseCreated(subscriberID); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = "normal"
	}

	now := time.Now()
	kase := &models.Case{
		ClientID:     subscriberID,
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		Priority:     priority,
		Status:       models.CaseStatusNew,
		Location:     req.Location,
		Budget:       req.Budget,
		Timeframe:    req.Timeframe,
		LastActivity: now,
	}
	if err := s.caseRepo.Create(kase); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Notification write is at-most-once and never rolls back the case.
	s.notify(func() error {
		return s.notificationRepo.CreateCaseCreatedNotification(subscriberID, kase.ID, kase.Title)
	})

	return kase, nil
}

func (s *caseService) ListCases(userID string, role models.UserRole, page, pageSize int) (*dto.CaseListResponse, error) {
	offset := (page - 1) * pageSize

	var cases []models.Case
	var total int64
	var err error

	switch role {
	case models.UserRoleSubscriber:
		cases, total, err = s.caseRepo.FindByClient(userID, pageSize, offset)
	case models.UserRoleInvestigator:
		cases, total, err = s.caseRepo.FindByInvestigator(userID, pageSize, offset)
	case models.UserRoleAdmin:
		cases, total, err = s.caseRepo.FindAll(pageSize, offset)
	default:
		return nil, apperrors.ErrInvalidRole(string(role))
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CaseListResponse{
		Cases:      cases,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}

func (s *caseService) GetCase(caseID, actorID string, role models.UserRole) (*dto.CaseDetailResponse, error) {
	kase, err := s.findCaseWithMessages(caseID)
	if err != nil {
		return nil, err
	}

	if !kase.IsParty(actorID) && role != models.UserRoleAdmin {
		return nil, apperrors.NewForbiddenError("You are not a party to this case")
	}

	return &dto.CaseDetailResponse{
		Case:     kase,
		Messages: kase.Messages,
	}, nil
}

// UpdateCase applies a patch on behalf of a case party (or an admin), bumps
// lastActivity and informs the counterparty. An unassigned case is silently
// left without a notification when the owner is the actor.
func (s *caseService) UpdateCase(caseID, actorID string, role models.UserRole, req *dto.UpdateCaseRequest) (*models.Case, error) {
	kase, err := s.findCase(caseID)
	if err != nil {
		return nil, err
	}

	if !kase.IsParty(actorID) && role != models.UserRoleAdmin {
		return nil, apperrors.NewForbiddenError("You are not a party to this case")
	}

	if req.Status != nil {
		next := models.CaseStatus(*req.Status)
		if !kase.Status.CanTransitionTo(next) {
			return nil, apperrors.ErrInvalidTransition(string(kase.Status), string(next))
		}
		// An unassigned case can never hold status active; assignment is the
		// only path that activates a case.
		if next == models.CaseStatusActive && !kase.Assigned() {
			return nil, apperrors.ErrInvalidOperation("case", "Cannot activate a case without an assigned investigator")
		}
		kase.Status = next
	}
	if req.Title != nil {
		kase.Title = *req.Title
	}
	if req.Description != nil {
		kase.Description = *req.Description
	}
	if req.Priority != nil {
		kase.Priority = *req.Priority
	}
	if req.Location != nil {
		kase.Location = *req.Location
	}
	if req.Budget != nil {
		kase.Budget = req.Budget
	}
	if req.Timeframe != nil {
		kase.Timeframe = *req.Timeframe
	}

	kase.LastActivity = time.Now()
	if err := s.caseRepo.Update(kase); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if recipient, ok := kase.Counterparty(actorID); ok {
		s.notify(func() error {
			return s.notificationRepo.CreateCaseUpdatedNotification(recipient, kase.ID, kase.Title, kase.Status)
		})
	}

	return kase, nil
}

// AssignInvestigator may only be called by the case owner. It sets the
// investigator and activates the case in one repository update.
func (s *caseService) AssignInvestigator(caseID, investigatorID, actorID string) (*models.Case, error) {
	kase, err := s.findCase(caseID)
	if err != nil {
		return nil, err
	}

	if actorID != kase.ClientID {
		return nil, apperrors.NewForbiddenError("Only the case owner may assign an investigator")
	}
	if !kase.Status.CanTransitionTo(models.CaseStatusActive) {
		return nil, apperrors.ErrInvalidTransition(string(kase.Status), string(models.CaseStatusActive))
	}

	investigator, err := s.userRepo.FindByID(investigatorID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if investigator.Role != models.UserRoleInvestigator {
		return nil, apperrors.ErrInvalidOperation("case", "Assignee is not an investigator")
	}

	if err := s.caseRepo.Assign(caseID, investigatorID, time.Now()); err != nil {
		return nil, apperrors.InternalError(err)
	}

	kase, err = s.findCase(caseID)
	if err != nil {
		return nil, err
	}

	s.notify(func() error {
		return s.notificationRepo.CreateCaseAssignmentNotification(investigatorID, kase.ID, kase.Title)
	})
	if err := s.emailSvc.Send(email.CaseAssignedMessage(investigator.Email, kase.Title)); err != nil {
		logger.Warn("assignment email failed", "email", investigator.Email, "error", err)
	}

	return kase, nil
}

// DeleteCase hard-deletes; there is no tombstone and no quota refund.
func (s *caseService) DeleteCase(caseID, actorID string) error {
	kase, err := s.findCase(caseID)
	if err != nil {
		return err
	}

	if actorID != kase.ClientID {
		return apperrors.NewForbiddenError("Only the case owner may delete the case")
	}

	if err := s.caseRepo.Delete(caseID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *caseService) findCase(caseID string) (*models.Case, error) {
	kase, err := s.caseRepo.FindByID(caseID)
	if err != nil {
		if err == repositories.ErrCaseNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return kase, nil
}

func (s *caseService) findCaseWithMessages(caseID string) (*models.Case, error) {
	kase, err := s.caseRepo.FindByIDWithMessages(caseID)
	if err != nil {
		if err == repositories.ErrCaseNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return kase, nil
}

func (s *caseService) notify(write func() error) {
	if err := write(); err != nil {
		logger.Warn("notification write failed", "error", err)
	}
}
