package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                 string
	DatabaseURL          string
	JWTSecret            string
	Environment          string
	MigrationsDir        string
	RunMigrations        bool
	RunSeed              bool
	SeedManagerUsername  string
	SeedManagerPassword  string
	SeedEmployeeUsername string
	SeedEmployeePassword string
	AllowSelfSignup      bool
	TokenTTL             time.Duration
	MaxBodyBytes         int64
	RateLimitPerMinute   int
	ChartDir             string
	JobQueueSize         int
	MetricsEnabled       bool
	Log                  LogConfig
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func Load() Config {
	return Config{
		Addr:                 getEnv("APP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		Environment:          getEnv("APP_ENV", "development"),
		MigrationsDir:        getEnv("MIGRATIONS_DIR", "migrations"),
		RunMigrations:        getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:              getEnvBool("RUN_SEED", true),
		SeedManagerUsername:  getEnv("SEED_MANAGER_USERNAME", "manager"),
		SeedManagerPassword:  getEnv("SEED_MANAGER_PASSWORD", ""),
		SeedEmployeeUsername: getEnv("SEED_EMPLOYEE_USERNAME", "employee"),
		SeedEmployeePassword: getEnv("SEED_EMPLOYEE_PASSWORD", ""),
		AllowSelfSignup:      getEnvBool("ALLOW_SELF_SIGNUP", true),
		TokenTTL:             getEnvDuration("TOKEN_TTL", 8*time.Hour),
		MaxBodyBytes:         int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:   getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		ChartDir:             getEnv("CHART_DIR", "storage/charts"),
		JobQueueSize:         getEnvInt("JOB_QUEUE_SIZE", 128),
		MetricsEnabled:       getEnvBool("METRICS_ENABLED", true),
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		if c.Environment == "production" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
	}
	if c.Environment == "production" && c.RunSeed {
		if c.SeedManagerPassword == "" || c.SeedEmployeePassword == "" {
			return fmt.Errorf("seed passwords must be set or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.JobQueueSize <= 0 {
		return fmt.Errorf("JOB_QUEUE_SIZE must be positive")
	}
	if strings.TrimSpace(c.ChartDir) == "" {
		return fmt.Errorf("CHART_DIR is required")
	}
	return nil
}
