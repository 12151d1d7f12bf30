package configs

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tarweej.app/configs/configslog"
)

var db *gorm.DB

// InitDB opens the postgres connection pool. Fatal on failure: the
// application cannot do anything useful without its datastore.
func InitDB(cfg *AppConfig) *gorm.DB {
	gormLogLevel := logger.Warn
	if cfg.AppEnv == "development" {
		gormLogLevel = logger.Info
	}

	conn, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		configslog.Log.Fatal("database connection failed", zap.Error(err))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("database pool handle unavailable", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	db = conn
	configslog.SLog.Infof("database connected: %s/%s", cfg.DBHost, cfg.DBName)
	return db
}

// GetDB returns the shared gorm handle. InitDB must have run first.
func GetDB() *gorm.DB {
	if db == nil {
		panic("configs: GetDB called before InitDB")
	}
	return db
}

// SetDB replaces the shared handle. Used by tests that inject their own
// database.
func SetDB(conn *gorm.DB) {
	db = conn
}
