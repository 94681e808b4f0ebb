package handlers

// AppHandlers holds every HTTP handler in the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	ProfileHandler      *ProfileHandler
	CaseHandler         *CaseHandler
	ReviewHandler       *ReviewHandler
	NotificationHandler *NotificationHandler
	SubscriptionHandler *SubscriptionHandler
	AdminHandler        *AdminHandler
}
