package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tarweej.app/configs/configslog"
	"tarweej.app/models"
)

func MigrateCampaignsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating campaigns table...")
	if err := db.AutoMigrate(&models.Campaign{}); err != nil {
		configslog.Log.Error("Failed to migrate campaigns table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Campaigns table migrated successfully")
	return nil
}
