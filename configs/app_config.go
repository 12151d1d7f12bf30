package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"tarweej.app/configs/configslog"
)

// AppConfig holds everything read from the environment at startup.
type AppConfig struct {
	AppEnv     string
	ListenAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string
	JWTTTL    time.Duration

	// Workflow thresholds. Defaults match the product rules: invitations
	// expire after 48 hours without a response, submitted proofs are
	// auto-approved after 24 hours without owner review.
	InviteExpiry     time.Duration
	ProofAutoApprove time.Duration
	SweepInterval    time.Duration
	SweepBatchSize   int

	// Optional remote scorer. Empty URL means the built-in weighted
	// scorer is used.
	ScorerURL     string
	ScorerTimeout time.Duration
}

var appConfig *AppConfig

// LoadEnv reads .env (if present) and builds the AppConfig singleton.
func LoadEnv() *AppConfig {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env file not found, relying on process environment")
	}

	appConfig = &AppConfig{
		AppEnv:     getEnv("APP_ENV", "development"),
		ListenAddr: getEnv("LISTEN_ADDR", ":3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "tarweej"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "tarweej"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    getEnvDuration("JWT_TTL", 24*time.Hour),

		InviteExpiry:     time.Duration(getEnvInt("INVITE_EXPIRY_HOURS", 48)) * time.Hour,
		ProofAutoApprove: time.Duration(getEnvInt("PROOF_AUTO_APPROVE_HOURS", 24)) * time.Hour,
		SweepInterval:    getEnvDuration("SWEEP_INTERVAL", 15*time.Minute),
		SweepBatchSize:   getEnvInt("SWEEP_BATCH_SIZE", 50),

		ScorerURL:     getEnv("SCORER_URL", ""),
		ScorerTimeout: getEnvDuration("SCORER_TIMEOUT", 20*time.Second),
	}

	if appConfig.JWTSecret == "" && appConfig.AppEnv == "production" {
		configslog.Log.Fatal("JWT_SECRET must be set in production")
	}

	return appConfig
}

// GetConfig returns the loaded configuration. LoadEnv must have run first.
func GetConfig() *AppConfig {
	if appConfig == nil {
		panic("configs: GetConfig called before LoadEnv")
	}
	return appConfig
}

// DSN builds the postgres connection string from the DB_* settings.
func (c *AppConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		configslog.SLog.Warnf("invalid integer for %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		configslog.SLog.Warnf("invalid duration for %s=%q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}
