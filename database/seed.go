package database

import (
	"errors"
	"fmt"
	"log/slog"

	"visitmelaka/internal/config"
	"visitmelaka/internal/http-api/middleware/auth"
	"visitmelaka/internal/http-api/models"

	"gorm.io/gorm"
)

// SeedAdmin makes sure the configured admin account exists. Place CRUD is
// admin-only, so a fresh database would otherwise be unmanageable.
func SeedAdmin(db *gorm.DB, cfg *config.Config, logger *slog.Logger) error {
	var existing models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up admin account: %w", err)
	}

	hashed, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.User{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	logger.Info("Seeded admin account", "username", cfg.AdminUsername, "email", cfg.AdminEmail)
	return nil
}
