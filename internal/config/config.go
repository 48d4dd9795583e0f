package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	RedisURL      string
	RedisPoolSize int

	JWTSecret string

	// InternalAPIKey guards the scheduler-only endpoints (alert creation).
	InternalAPIKey string

	CORSOrigins string

	ResendAPIKey    string
	FromEmail       string
	EscalationEmail string

	// CheckInterval is how often the background compliance checker runs.
	CheckInterval time.Duration
	// CheckerLockTTL bounds how long a single checker run may hold the
	// cross-instance lock.
	CheckerLockTTL time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBMaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),

		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		RedisPoolSize: getIntEnv("REDIS_POOL_SIZE", 10),

		JWTSecret: getEnv("JWT_SECRET", ""),

		InternalAPIKey: getEnv("INTERNAL_API_KEY", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		FromEmail:       getEnv("FROM_EMAIL", "alerts@example.com"),
		EscalationEmail: getEnv("ESCALATION_EMAIL", ""),

		CheckInterval:  getDurationEnv("CHECK_INTERVAL", 15*time.Minute),
		CheckerLockTTL: getDurationEnv("CHECKER_LOCK_TTL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
