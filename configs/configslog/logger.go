package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the structured logger, SLog the sugared variant of the same core.
// InitLogger must run once at startup before either is used.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger configures zap according to APP_ENV. Production gets JSON
// output, everything else gets the console encoder with colored levels.
func InitLogger() {
	env := os.Getenv("APP_ENV")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		panic("logger init failed: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// Sync flushes buffered log entries. Called from main on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
