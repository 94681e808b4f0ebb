package database

import (
	"fmt"

	"piwork_backend/internal/config"
	"piwork_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens (and memoizes) the GORM connection using the configured DSN.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates every model. Order matters for foreign keys: users
// before profiles and cases, cases before messages and reviews.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.SubscriberProfile{},
		&models.InvestigatorProfile{},
		&models.Case{},
		&models.Message{},
		&models.Review{},
		&models.Notification{},
		&models.Subscription{},
	)
}
