package database

import (
	"fmt"
	"log/slog" // use slog for structured logging
	"time"

	"visitmelaka/internal/config"
	"visitmelaka/internal/http-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDB opens the Postgres connection, bounds the pool and brings the
// schema up to date. The original deployment created its tables at startup,
// so auto-migration keeps that behavior.
func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormLogLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		gormLogLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	// Bounded pool: excess requests queue for a free connection
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpen)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Verify the connection
	if err := sqlDB.Ping(); err != nil {
		// close the pool if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully",
		"host", cfg.DBHost, "database", cfg.DBName, "max_open_conns", cfg.DBMaxOpen)
	return db, nil
}

func runMigrations(db *gorm.DB, logger *slog.Logger) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Place{},
		&models.Rating{},
		&models.RefreshToken{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	logger.Info("Database migrations applied successfully")
	return nil
}
