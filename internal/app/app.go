package app

import (
	"context"
	"errors"
	"fmt"

	"piwork_backend/database"
	"piwork_backend/internal/auth"
	"piwork_backend/internal/config"
	"piwork_backend/internal/email"
	"piwork_backend/internal/entitlement"
	"piwork_backend/internal/handlers"
	"piwork_backend/internal/logger"
	"piwork_backend/internal/middleware"
	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"
	"piwork_backend/internal/routes"
	"piwork_backend/internal/services"
	"piwork_backend/internal/validator"
	"piwork_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Run boots the whole application: config, logger, database, migrations,
// admin seeding, background workers and the HTTP server.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	db, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(db, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	serviceContainer := initializeServices(cfg, db)
	appHandlers := initializeHandlers(cfg, serviceContainer)

	startWorkers(context.Background(), cfg, db)

	router := initializeGinRouter(cfg)
	routes.RegisterRoutes(router, appHandlers)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func initializeServices(cfg *config.Config, db *gorm.DB) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.Enabled {
		emailService = email.NewSMTPProvider(cfg)
		logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		emailService = &MockEmailProvider{}
		logger.Warn("Email disabled in config; using mock provider")
	}

	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	caseRepo := repositories.NewCaseRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)

	ledger := entitlement.NewLedger(profileRepo)

	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(userRepo, profileRepo, emailService),
		UserService:         services.NewUserService(userRepo, profileRepo),
		ProfileService:      services.NewProfileService(profileRepo),
		CaseService:         services.NewCaseService(caseRepo, userRepo, profileRepo, notificationRepo, ledger, emailService),
		MessageService:      services.NewMessageService(caseRepo, messageRepo, userRepo, notificationRepo),
		ReviewService:       services.NewReviewService(caseRepo, reviewRepo, profileRepo, notificationRepo),
		NotificationService: services.NewNotificationService(notificationRepo),
		SubscriptionService: services.NewSubscriptionService(subscriptionRepo, profileRepo, notificationRepo, userRepo, ledger, emailService),
		AnalyticsService:    services.NewAnalyticsService(userRepo, caseRepo, subscriptionRepo),
		EmailService:        emailService,
	}
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, svc.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, svc.UserService, cfg.Server.DemoMode),
		ProfileHandler:      handlers.NewProfileHandler(baseHandler, svc.ProfileService, svc.ReviewService),
		CaseHandler:         handlers.NewCaseHandler(baseHandler, svc.CaseService, svc.MessageService),
		ReviewHandler:       handlers.NewReviewHandler(baseHandler, svc.ReviewService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, svc.NotificationService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(baseHandler, svc.SubscriptionService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, svc.UserService, svc.AnalyticsService),
	}
}

func startWorkers(ctx context.Context, cfg *config.Config, db *gorm.DB) {
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	workers.NewSubscriptionWorker(subscriptionRepo, cfg.Workers.BillingIntervalHours).Start(ctx)
	workers.NewNotificationWorker(notificationRepo, cfg.Workers.NotificationCleanupHours, cfg.Workers.NotificationRetentionDays).Start(ctx)
	logger.Info("Background workers started")
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// seedFirstAdmin creates the platform admin account on first boot. Skipped
// when admin credentials are absent from config or the account already exists.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Warn("Admin email or password not configured. Skipping admin seeding.")
		return nil
	}

	var admin models.User
	result := db.Where("email = ?", cfg.Admin.Email).First(&admin)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", cfg.Admin.Email)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		FullName:     "Platform Administrator",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", cfg.Admin.Email)
	return nil
}
