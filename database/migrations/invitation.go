package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tarweej.app/configs/configslog"
	"tarweej.app/models"
)

func MigrateInvitationsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating invitations table...")
	if err := db.AutoMigrate(&models.Invitation{}); err != nil {
		configslog.Log.Error("Failed to migrate invitations table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Invitations table migrated successfully")
	return nil
}
