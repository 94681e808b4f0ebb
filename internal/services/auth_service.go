package services

import (
	"net/http"

	"piwork_backend/internal/auth"
	"piwork_backend/internal/email"
	"piwork_backend/internal/logger"
	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"
	"piwork_backend/internal/services/dto"
	"piwork_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	emailSvc    email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository, emailSvc email.Provider) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		emailSvc:    emailSvc,
	}
}

// Register creates a user with the requested role and eagerly provisions the
// matching profile. Admin accounts are never self-registered.
func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.UserRole(req.Role)
	if role != models.UserRoleSubscriber && role != models.UserRoleInvestigator {
		return nil, apperrors.ErrInvalidRole(req.Role)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		if err == repositories.ErrUserAlreadyExists {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	switch role {
	case models.UserRoleSubscriber:
		if _, err := ensureSubscriberProfile(s.profileRepo, user.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	case models.UserRoleInvestigator:
		if _, err := ensureInvestigatorProfile(s.profileRepo, user.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := s.emailSvc.Send(email.WelcomeMessage(user.Email, user.FullName)); err != nil {
		logger.Warn("welcome email failed", "email", user.Email, "error", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: user}, nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.NewForbiddenError("Account suspended")
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: user}, nil
}
