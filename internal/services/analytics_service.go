package services

import (
	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"
	"piwork_backend/internal/services/dto"
	"piwork_backend/pkg/apperrors"
)

// AnalyticsService backs the admin dashboard with plain counts.
type AnalyticsService interface {
	GetPlatformStats() (*dto.PlatformStats, error)
}

type analyticsService struct {
	userRepo         repositories.UserRepository
	caseRepo         repositories.CaseRepository
	subscriptionRepo repositories.SubscriptionRepository
}

func NewAnalyticsService(
	userRepo repositories.UserRepository,
	caseRepo repositories.CaseRepository,
	subscriptionRepo repositories.SubscriptionRepository,
) AnalyticsService {
	return &analyticsService{
		userRepo:         userRepo,
		caseRepo:         caseRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

func (s *analyticsService) GetPlatformStats() (*dto.PlatformStats, error) {
	subscribers, err := s.userRepo.CountByRole(models.UserRoleSubscriber)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	investigators, err := s.userRepo.CountByRole(models.UserRoleInvestigator)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	admins, err := s.userRepo.CountByRole(models.UserRoleAdmin)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	casesByStatus, err := s.caseRepo.CountByStatus()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	var totalCases int64
	for _, count := range casesByStatus {
		totalCases += count
	}

	subscriptionsByPlan, err := s.subscriptionRepo.CountByPlan()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.PlatformStats{
		TotalUsers:          subscribers + investigators + admins,
		Subscribers:         subscribers,
		Investigators:       investigators,
		TotalCases:          totalCases,
		CasesByStatus:       casesByStatus,
		SubscriptionsByPlan: subscriptionsByPlan,
	}, nil
}
