package services

import (
	"errors"

	"piwork_backend/internal/logger"
	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"
	"piwork_backend/internal/services/dto"
	"piwork_backend/pkg/apperrors"
)

var ErrReviewAlreadyExists = errors.New("case already has a review")

type ReviewService interface {
	SubmitReview(caseID, clientID string, req *dto.SubmitReviewRequest) (*models.Review, error)
	ListInvestigatorReviews(investigatorID string, page, pageSize int) (*dto.ReviewListResponse, error)
}

type reviewService struct {
	caseRepo         repositories.CaseRepository
	reviewRepo       repositories.ReviewRepository
	profileRepo      repositories.ProfileRepository
	notificationRepo repositories.NotificationRepository
}

func NewReviewService(
	caseRepo repositories.CaseRepository,
	reviewRepo repositories.ReviewRepository,
	profileRepo repositories.ProfileRepository,
	notificationRepo repositories.NotificationRepository,
) ReviewService {
	return &reviewService{
		caseRepo:         caseRepo,
		reviewRepo:       reviewRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
	}
}

// SubmitReview records the subscriber's rating of the assigned investigator.
// The case status is deliberately not checked: a review on a not-yet-completed
// case is accepted.
func (s *reviewService) SubmitReview(caseID, clientID string, req *dto.SubmitReviewRequest) (*models.Review, error) {
	kase, err := s.caseRepo.FindByID(caseID)
	if err != nil {
		if err == repositories.ErrCaseNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if clientID != kase.ClientID {
		return nil, apperrors.NewForbiddenError("Only the case owner may submit a review")
	}
	if !kase.Assigned() {
		return nil, apperrors.ErrNoInvestigator()
	}

	exists, err := s.reviewRepo.ExistsForCase(caseID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyExists(ErrReviewAlreadyExists)
	}

	review := &models.Review{
		CaseID:         caseID,
		ClientID:       clientID,
		InvestigatorID: *kase.InvestigatorID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Derived aggregate; the review itself stays committed if this fails.
	if err := s.profileRepo.ApplyReviewRating(review.InvestigatorID, review.Rating); err != nil {
		logger.Warn("failed to update investigator rating aggregate", "investigator_id", review.InvestigatorID, "error", err)
	}

	if err := s.notificationRepo.CreateNewReviewNotification(review.InvestigatorID, caseID, review.Rating); err != nil {
		logger.Warn("notification write failed", "error", err)
	}

	return review, nil
}

func (s *reviewService) ListInvestigatorReviews(investigatorID string, page, pageSize int) (*dto.ReviewListResponse, error) {
	reviews, total, err := s.reviewRepo.FindByInvestigator(investigatorID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ReviewListResponse{
		Reviews:    reviews,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}
