package services

import (
	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"
	"piwork_backend/internal/services/dto"
	"piwork_backend/pkg/apperrors"
)

type UserService interface {
	GetMe(userID string) (*dto.MeResponse, error)
	// SwitchRole is the demo-only role flip; the handler gates it behind
	// config. The profile for the new role is provisioned lazily.
	SwitchRole(userID string, newRole models.UserRole) (*dto.MeResponse, error)
	ListUsers(page, pageSize int) (*dto.UserListResponse, error)
}

type userService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewUserService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) UserService {
	return &userService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (s *userService) GetMe(userID string) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.MeResponse{User: user}

	// Profiles are created lazily on first fetch.
	switch user.Role {
	case models.UserRoleSubscriber:
		profile, err := ensureSubscriberProfile(s.profileRepo, userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		resp.SubscriberProfile = profile
	case models.UserRoleInvestigator:
		profile, err := ensureInvestigatorProfile(s.profileRepo, userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		resp.InvestigatorProfile = profile
	case models.UserRoleAdmin:
		// Admins carry no marketplace profile.
	}

	return resp, nil
}

func (s *userService) SwitchRole(userID string, newRole models.UserRole) (*dto.MeResponse, error) {
	if newRole != models.UserRoleSubscriber && newRole != models.UserRoleInvestigator {
		return nil, apperrors.ErrInvalidRole(string(newRole))
	}

	if err := s.userRepo.UpdateRole(userID, newRole); err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return s.GetMe(userID)
}

func (s *userService) ListUsers(page, pageSize int) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.FindAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UserListResponse{
		Users:      users,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}
