package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tarweej.app/configs/configslog"
	"tarweej.app/database/migrations"
	"tarweej.app/database/seeders"
)

// Initialize runs migrations and seeders inside one transaction,
// controlled by the -migrate and -seed flags.
func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("Neither migrate nor seed flag given, nothing to do")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Failed to begin database transaction", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Database initialization panicked", zap.Any("panic_info", r))
		} else if err := tx.Error; err != nil && err != gorm.ErrInvalidTransaction {
			configslog.SLog.Warn("Rolling back after initialization error", zap.Error(err))
			rbErr := tx.Rollback().Error
			if rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
				configslog.Log.Error("Rollback failed", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("Database initialization starting...")

	if migrate {
		configslog.SLog.Info("Running migrations...")
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migration failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("Migrations completed")
	} else {
		configslog.SLog.Info("Migrate flag not given, skipping migrations")
	}

	if seed {
		configslog.SLog.Info("Running seeders...")
		if err := CheckAndRunSeeders(tx); err != nil {
			configslog.Log.Error("Seeding failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("Seeders completed")
	} else {
		configslog.SLog.Info("Seed flag not given, skipping seeders")
	}

	if err := tx.Commit().Error; err != nil {
		tx.Error = err
		configslog.Log.Error("Commit failed", zap.Error(err))
		return
	}

	configslog.SLog.Info("Database initialization finished successfully")
}

// RunMigrationsInOrder migrates tables respecting foreign key order:
// users first, then profiles and campaigns, then the tables that
// reference both.
func RunMigrationsInOrder(db *gorm.DB) error {
	if err := migrations.MigrateUsersTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateInfluencerProfilesTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateCampaignsTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateSuggestionsTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateInvitationsTable(db); err != nil {
		return err
	}
	configslog.SLog.Info("All migrations ran successfully")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	if err := seeders.SeedAdminUser(db); err != nil {
		return err
	}
	configslog.SLog.Info("All seeders checked/ran successfully")
	return nil
}
