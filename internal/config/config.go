package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service
	HTTPPort int `env:"HTTP_PORT" default:"3001"`

	// Database
	DBHost     string `env:"DB_HOST" default:"localhost"`
	DBPort     int    `env:"DB_PORT" default:"5432"`
	DBUser     string `env:"DB_USER" default:"postgres"`
	DBPassword string `env:"DB_PASSWORD" default:"postgres"`
	DBName     string `env:"DB_NAME" default:"visit_melaka"`
	DBSSLMode  string `env:"DB_SSLMODE" default:"disable"`
	DBMaxOpen  int    `env:"DB_MAX_OPEN_CONNS" default:"10"`
	DBMaxIdle  int    `env:"DB_MAX_IDLE_CONNS" default:"5"`

	// Authentication
	JWTSecret       string        `env:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" default:"168h"`

	// Seeded admin account
	AdminUsername string `env:"ADMIN_USERNAME" default:"admin"`
	AdminEmail    string `env:"ADMIN_EMAIL" default:"admin@visitmelaka.local"`
	AdminPassword string `env:"ADMIN_PASSWORD" default:"admin12345"`

	// Rate limiting (requests per second per client, burst size)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" default:"40"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"debug"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// devJWTSecret keeps a bare `go run ./cmd/api-server` working without a .env
// file. Validate rejects it in production.
const devJWTSecret = "visit-melaka-dev-secret-do-not-use-in-prod"

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Try to load .env file from project root
	if err := godotenv.Load(".env"); err != nil {
		// If .env file doesn't exist, that's OK - we can still use system env vars
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}

	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 3001); err != nil {
		return nil, err
	}

	// Database
	if err := loadEnvString(&config.DBHost, "DB_HOST", "localhost"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.DBPort, "DB_PORT", 5432); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.DBUser, "DB_USER", "postgres"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.DBPassword, "DB_PASSWORD", "postgres"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.DBName, "DB_NAME", "visit_melaka"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.DBSSLMode, "DB_SSLMODE", "disable"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.DBMaxOpen, "DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.DBMaxIdle, "DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}

	// Authentication
	if err := loadEnvString(&config.JWTSecret, "JWT_SECRET", devJWTSecret); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.AccessTokenTTL, "ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RefreshTokenTTL, "REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}

	// Admin seed
	if err := loadEnvString(&config.AdminUsername, "ADMIN_USERNAME", "admin"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.AdminEmail, "ADMIN_EMAIL", "admin@visitmelaka.local"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.AdminPassword, "ADMIN_PASSWORD", "admin12345"); err != nil {
		return nil, err
	}

	// Rate limiting
	if err := loadEnvFloat(&config.RateLimitRPS, "RATE_LIMIT_RPS", 20); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.RateLimitBurst, "RATE_LIMIT_BURST", 40); err != nil {
		return nil, err
	}

	// Development
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "debug"); err != nil {
		return nil, err
	}
	if err := loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:3000"}); err != nil {
		return nil, err
	}

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) error {
	if value := os.Getenv(key); value != "" {
		*target = strings.Split(value, ",")
		// Trim whitespace from each element
		for i, v := range *target {
			(*target)[i] = strings.TrimSpace(v)
		}
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}
	if c.DBPort < 1 || c.DBPort > 65535 {
		errors = append(errors, "DB_PORT must be between 1 and 65535")
	}
	if c.DBMaxOpen < 1 {
		errors = append(errors, "DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.DBMaxIdle > c.DBMaxOpen {
		errors = append(errors, "DB_MAX_IDLE_CONNS must not exceed DB_MAX_OPEN_CONNS")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	// JWT secret length (should be at least 32 characters for security)
	if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET should be at least 32 characters long")
	}
	if c.IsProduction() && c.JWTSecret == devJWTSecret {
		errors = append(errors, "JWT_SECRET must be set explicitly in production")
	}

	if c.RateLimitRPS <= 0 {
		errors = append(errors, "RATE_LIMIT_RPS must be positive")
	}
	if c.RateLimitBurst < 1 {
		errors = append(errors, "RATE_LIMIT_BURST must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// DSN builds the Postgres connection string for the configured database
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
