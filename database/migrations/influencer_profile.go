package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tarweej.app/configs/configslog"
	"tarweej.app/models"
)

func MigrateInfluencerProfilesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating influencer_profiles table...")
	if err := db.AutoMigrate(&models.InfluencerProfile{}); err != nil {
		configslog.Log.Error("Failed to migrate influencer_profiles table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Influencer_profiles table migrated successfully")
	return nil
}
