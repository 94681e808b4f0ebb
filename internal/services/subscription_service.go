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

// Nominal plan pricing. Payment processing is mocked; these amounts are only
// recorded on the billing row.
var planMonthlyPrices = map[models.SubscriptionPlan]float64{
	models.PlanBasic:      29.99,
	models.PlanPro:        99.99,
	models.PlanEnterprise: 299.99,
}

const yearlyDiscountFactor = 10 // pay 10 months for 12

type SubscriptionService interface {
	ChangePlan(userID string, req *dto.ChangePlanRequest) (*dto.SubscriptionResponse, error)
	GetCurrent(userID string) (*dto.SubscriptionResponse, error)
	ListPlans() []dto.PlanInfo
}

type subscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
	profileRepo      repositories.ProfileRepository
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	ledger           *entitlement.Ledger
	emailSvc         email.Provider
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	profileRepo repositories.ProfileRepository,
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	ledger *entitlement.Ledger,
	emailSvc email.Provider,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		ledger:           ledger,
		emailSvc:         emailSvc,
	}
}

// ChangePlan switches the subscriber to a new plan, resets the quota to the
// plan allowance (no rollover, no proration) and replaces the active billing
// record.
func (s *subscriptionService) ChangePlan(userID string, req *dto.ChangePlanRequest) (*dto.SubscriptionResponse, error) {
	plan := models.SubscriptionPlan(req.Plan)
	if !plan.Valid() {
		return nil, apperrors.ErrInvalidPlan(req.Plan)
	}

	cycle := models.BillingCycle(req.BillingCycle)
	if cycle == "" {
		cycle = models.BillingCycleMonthly
	}
	if !cycle.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid billing cycle: " + req.BillingCycle)
	}

	if _, err := ensureSubscriberProfile(s.profileRepo, userID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	profile, err := s.ledger.OnPlanChanged(userID, plan)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.subscriptionRepo.CancelActive(userID, now); err != nil {
		return nil, apperrors.InternalError(err)
	}

	subscription := &models.Subscription{
		UserID:          userID,
		Plan:            plan,
		Amount:          priceFor(plan, cycle),
		BillingCycle:    cycle,
		Status:          models.SubscriptionStatusActive,
		StartDate:       now,
		NextBillingDate: nextBillingDate(now, cycle),
	}
	if err := s.subscriptionRepo.Create(subscription); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.notificationRepo.CreatePlanChangedNotification(userID, plan, profile.CasesRemaining); err != nil {
		logger.Warn("notification write failed", "error", err)
	}
	if user, err := s.userRepo.FindByID(userID); err == nil {
		if err := s.emailSvc.Send(email.PlanChangedMessage(user.Email, string(plan), profile.CasesRemaining)); err != nil {
			logger.Warn("plan change email failed", "email", user.Email, "error", err)
		}
	}

	return &dto.SubscriptionResponse{
		Subscription: subscription,
		Profile:      profile,
	}, nil
}

func (s *subscriptionService) GetCurrent(userID string) (*dto.SubscriptionResponse, error) {
	profile, err := ensureSubscriberProfile(s.profileRepo, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	subscription, err := s.subscriptionRepo.FindActiveByUser(userID)
	if err != nil {
		if err != repositories.ErrSubscriptionNotFound {
			return nil, apperrors.InternalError(err)
		}
		subscription = nil
	}

	return &dto.SubscriptionResponse{
		Subscription: subscription,
		Profile:      profile,
	}, nil
}

func (s *subscriptionService) ListPlans() []dto.PlanInfo {
	plans := []models.SubscriptionPlan{models.PlanBasic, models.PlanPro, models.PlanEnterprise}

	infos := make([]dto.PlanInfo, 0, len(plans))
	for _, plan := range plans {
		quota, _ := entitlement.QuotaFor(plan)
		infos = append(infos, dto.PlanInfo{
			Name:         plan,
			MonthlyPrice: planMonthlyPrices[plan],
			YearlyPrice:  planMonthlyPrices[plan] * yearlyDiscountFactor,
			CaseQuota:    quota,
		})
	}
	return infos
}

func priceFor(plan models.SubscriptionPlan, cycle models.BillingCycle) float64 {
	price := planMonthlyPrices[plan]
	if cycle == models.BillingCycleYearly {
		return price * yearlyDiscountFactor
	}
	return price
}

func nextBillingDate(from time.Time, cycle models.BillingCycle) time.Time {
	if cycle == models.BillingCycleYearly {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}
