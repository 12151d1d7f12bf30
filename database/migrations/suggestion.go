package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tarweej.app/configs/configslog"
	"tarweej.app/models"
)

func MigrateSuggestionsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating suggestions table...")
	if err := db.AutoMigrate(&models.Suggestion{}); err != nil {
		configslog.Log.Error("Failed to migrate suggestions table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Suggestions table migrated successfully")
	return nil
}
