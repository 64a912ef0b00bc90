package repository

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"auction-api/internal/models"
)

// Connect opens the postgres database and migrates the schema.
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("repository: open database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Otp{},
		&models.AuthToken{},
		&models.GuestUser{},
		&models.Category{},
		&models.Listing{},
		&models.Bid{},
		&models.WatchList{},
		&models.SiteDetail{},
		&models.Subscriber{},
		&models.Review{},
	); err != nil {
		return nil, fmt.Errorf("repository: migrate: %w", err)
	}

	return db, nil
}
