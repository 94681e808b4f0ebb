package services

import (
	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"
	"piwork_backend/internal/services/dto"
	"piwork_backend/pkg/apperrors"
)

type ProfileService interface {
	ListInvestigators(filter repositories.InvestigatorFilter) (*dto.InvestigatorListResponse, error)
	GetInvestigatorProfile(userID string) (*models.InvestigatorProfile, error)
	UpdateInvestigatorProfile(userID string, req *dto.UpdateInvestigatorProfileRequest) (*models.InvestigatorProfile, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) ListInvestigators(filter repositories.InvestigatorFilter) (*dto.InvestigatorListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	profiles, total, err := s.profileRepo.FindInvestigators(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.InvestigatorListResponse{
		Investigators: profiles,
		Total:         total,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
		TotalPages:    calculateTotalPages(total, filter.PageSize),
	}, nil
}

func (s *profileService) GetInvestigatorProfile(userID string) (*models.InvestigatorProfile, error) {
	profile, err := s.profileRepo.FindInvestigatorProfile(userID)
	if err != nil {
		if err == repositories.ErrProfileNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *profileService) UpdateInvestigatorProfile(userID string, req *dto.UpdateInvestigatorProfileRequest) (*models.InvestigatorProfile, error) {
	profile, err := ensureInvestigatorProfile(s.profileRepo, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if req.Specializations != nil {
		profile.Specializations = toJSONList(req.Specializations)
	}
	if req.Skills != nil {
		profile.Skills = toJSONList(req.Skills)
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.IsAvailable != nil {
		profile.IsAvailable = *req.IsAvailable
	}

	if err := s.profileRepo.UpdateInvestigatorProfile(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}
