package services

import "piwork_backend/internal/email"

// ServiceContainer holds all application services.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	ProfileService      ProfileService
	CaseService         CaseService
	MessageService      MessageService
	ReviewService       ReviewService
	NotificationService NotificationService
	SubscriptionService SubscriptionService
	AnalyticsService    AnalyticsService
	EmailService        email.Provider
}
