package database

import (
	"fmt"
	"time"

	"github.com/karlos-perez/hundred-to-one/internal/config"
	"github.com/karlos-perez/hundred-to-one/internal/models"
	"github.com/karlos-perez/hundred-to-one/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// The bot serializes game handling, so the pool stays small; the
	// admin API is the only concurrent consumer.
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	logger.Info("Database connected successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Answer{},
		&models.Game{},
		&models.Participant{},
		&models.GameAnswer{},
		&models.Admin{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// SeedAdmin makes sure the configured operator account exists.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	db.Model(&models.Admin{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		return nil
	}

	logger.Info("Creating admin account", "email", cfg.AdminEmail)
	admin := &models.Admin{
		Email:    cfg.AdminEmail,
		Password: models.HashPassword(cfg.AdminPassword),
	}
	return db.Create(admin).Error
}

// SeedQuestions inserts a starter question set when the table is empty.
func SeedQuestions(db *gorm.DB, cfg *config.Config) error {
	var count int64
	db.Model(&models.Question{}).Count(&count)
	if count > 0 {
		return nil
	}

	logger.Info("Seeding starter questions...")
	questions := []models.Question{
		{
			Title: "Name something people do right after waking up",
			Answers: []models.Answer{
				{Title: "check their phone", Score: 38},
				{Title: "brush their teeth", Score: 24},
				{Title: "drink coffee", Score: 17},
				{Title: "take a shower", Score: 11},
				{Title: "snooze the alarm", Score: 7},
				{Title: "stretch", Score: 3},
			},
		},
		{
			Title: "Name a reason people are late for work",
			Answers: []models.Answer{
				{Title: "traffic", Score: 42},
				{Title: "overslept", Score: 27},
				{Title: "bad weather", Score: 13},
				{Title: "public transport", Score: 9},
				{Title: "kids", Score: 6},
				{Title: "lost keys", Score: 3},
			},
		},
		{
			Title: "Name something people take on a picnic",
			Answers: []models.Answer{
				{Title: "sandwiches", Score: 35},
				{Title: "blanket", Score: 26},
				{Title: "drinks", Score: 18},
				{Title: "fruit", Score: 11},
				{Title: "sunscreen", Score: 6},
				{Title: "speaker", Score: 4},
			},
		},
	}

	for _, q := range questions {
		if err := q.Validate(cfg.SumScore); err != nil {
			return fmt.Errorf("seed question %q is invalid: %w", q.Title, err)
		}
	}

	return db.Create(&questions).Error
}
