package seeders

import (
	"errors"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tarweej.app/configs/configslog"
	"tarweej.app/models"
)

const (
	defaultAdminEmail = "admin@tarweej.app"
	defaultAdminName  = "Platform Admin"
)

// SeedAdminUser makes sure an active admin account exists. The password
// comes from ADMIN_PASSWORD; without it a fresh database gets no admin
// and the seeder says so instead of inventing a credential.
func SeedAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		configslog.SLog.Infof("Admin user %s already exists, skipping", email)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Failed to check for existing admin user", zap.Error(result.Error))
		return result.Error
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		configslog.SLog.Warn("ADMIN_PASSWORD not set, admin user will not be seeded")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Failed to hash admin password", zap.Error(err))
		return err
	}

	admin := models.User{
		Name:         defaultAdminName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		configslog.Log.Error("Failed to create admin user", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Admin user %s created (ID: %d)", email, admin.ID)
	return nil
}
