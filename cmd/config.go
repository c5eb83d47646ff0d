package main

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Abraxas-365/shiftboard/internal/database"
	"github.com/Abraxas-365/shiftboard/pkg/logx"
	"github.com/Abraxas-365/shiftboard/pkg/statusx"
)

// DriverMemory keeps every collection in process memory
const DriverMemory = "memory"

// Config is the process configuration read from the environment
type Config struct {
	Port     string
	LogLevel string

	DBDriver string
	DBDSN    string

	RedisAddr  string
	RedisPass  string
	RedisDB    int
	SessionTTL time.Duration

	JWTSecret      string
	AccessTokenTTL time.Duration

	StatusMode    statusx.Mode
	ActionLatency time.Duration
	ActionFail    bool

	AWSRegion   string
	AWSBucket   string
	AWSEndpoint string

	Seed            bool
	AdminPassword   string
	StudentPassword string
}

// LoadConfig reads an optional .env file, then the environment
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logx.Warnf("Failed to read .env: %v", err)
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver: strings.ToLower(getEnv("DB_DRIVER", DriverMemory)),
		DBDSN:    getEnv("DB_DSN", ""),

		RedisAddr:  getEnv("REDIS_ADDR", ""),
		RedisPass:  getEnv("REDIS_PASS", ""),
		RedisDB:    getInt("REDIS_DB", 0),
		SessionTTL: getDuration("SESSION_TTL", 24*time.Hour),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		AccessTokenTTL: getDuration("ACCESS_TOKEN_TTL", 12*time.Hour),

		StatusMode:    statusx.ParseMode(getEnv("STATUS_MODE", string(statusx.ModePermissive))),
		ActionLatency: getDuration("ACTION_LATENCY", 1500*time.Millisecond),
		ActionFail:    getBool("ACTION_FAIL", false),

		AWSRegion:   getEnv("AWS_REGION", ""),
		AWSBucket:   getEnv("AWS_BUCKET", ""),
		AWSEndpoint: getEnv("AWS_ENDPOINT", ""),

		Seed:            getBool("SEED", true),
		AdminPassword:   getEnv("SEED_ADMIN_PASSWORD", "admin-shiftboard"),
		StudentPassword: getEnv("SEED_STUDENT_PASSWORD", "student-shiftboard"),
	}

	switch cfg.DBDriver {
	case DriverMemory:
	case database.DriverPostgres, database.DriverPgx, database.DriverSQLite:
		if cfg.DBDSN == "" {
			return nil, errors.New("DB_DSN is required when DB_DRIVER is " + cfg.DBDriver)
		}
	default:
		return nil, errors.New("unsupported DB_DRIVER " + cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		cfg.JWTSecret = "shiftboard-dev-secret-change-me"
	}
	return cfg, nil
}

// UseS3 reports whether exports go to S3
func (c *Config) UseS3() bool {
	return c.AWSBucket != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
