package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Redis     RedisConfig
	Analytics AnalyticsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port         int
	Env          string
	LogLevel     string
	StoreDriver  string
	AllowOrigins []string
}

// RedisConfig holds the analytics cache connection. Disabled means in-memory cache.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// AnalyticsConfig tunes the reporting layer
type AnalyticsConfig struct {
	CacheTTL              time.Duration
	CacheWarmInterval     time.Duration
	ReviewLookbackMonths  int
	SyntheticReviewFactor bool
	HighRiskLimit         int
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "cmlabs-hris"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:         appPort,
		Env:          getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		StoreDriver:  getEnv("STORE_DRIVER", StoreDriverPostgres),
		AllowOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Redis configuration
	redisPort, err := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	redisEnabled, err := strconv.ParseBool(getEnv("REDIS_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_ENABLED: %w", err)
	}

	config.Redis = RedisConfig{
		Enabled:  redisEnabled,
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     redisPort,
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Analytics configuration
	cacheTTL, err := time.ParseDuration(getEnv("ANALYTICS_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_CACHE_TTL: %w", err)
	}
	warmInterval, err := time.ParseDuration(getEnv("ANALYTICS_CACHE_WARM_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_CACHE_WARM_INTERVAL: %w", err)
	}
	lookback, err := strconv.Atoi(getEnv("ANALYTICS_REVIEW_LOOKBACK_MONTHS", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_REVIEW_LOOKBACK_MONTHS: %w", err)
	}
	synthetic, err := strconv.ParseBool(getEnv("ANALYTICS_SYNTHETIC_REVIEW_FACTOR", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_SYNTHETIC_REVIEW_FACTOR: %w", err)
	}
	highRiskLimit, err := strconv.Atoi(getEnv("ANALYTICS_HIGH_RISK_LIMIT", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_HIGH_RISK_LIMIT: %w", err)
	}

	config.Analytics = AnalyticsConfig{
		CacheTTL:              cacheTTL,
		CacheWarmInterval:     warmInterval,
		ReviewLookbackMonths:  lookback,
		SyntheticReviewFactor: synthetic,
		HighRiskLimit:         highRiskLimit,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.App.StoreDriver {
	case StoreDriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.App.StoreDriver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Analytics.ReviewLookbackMonths < 1 {
		return fmt.Errorf("ANALYTICS_REVIEW_LOOKBACK_MONTHS must be positive")
	}
	if c.Analytics.HighRiskLimit < 1 {
		return fmt.Errorf("ANALYTICS_HIGH_RISK_LIMIT must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// RedisAddr returns host:port for the redis client
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
