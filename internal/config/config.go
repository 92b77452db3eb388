// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database       DatabaseConfig
	Server         ServerConfig
	Logging        LoggingConfig
	CORS           CORSConfig
	JWT            JWTConfig
	RateLimit      RateLimitConfig
	APIKey         string
	MigrationsPath string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port           int
	MaxRequestSize int64
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds JWT token configuration
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// RateLimitConfig holds per-IP rate limiting settings
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	if err := loadDatabase(cfg, ""); err != nil {
		return nil, err
	}

	// Server configuration
	serverPort, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = serverPort

	maxRequestSize, err := intEnv("MAX_REQUEST_SIZE", 10*1024*1024)
	if err != nil {
		return nil, err
	}
	cfg.Server.MaxRequestSize = int64(maxRequestSize)

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWT.Secret = jwtSecret

	accessExpiry, err := durationEnv("JWT_ACCESS_TOKEN_EXPIRY", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.JWT.AccessTokenExpiry = accessExpiry

	// Rate limiting (default: 100 requests per minute per IP)
	requests, err := intEnv("RATE_LIMIT_REQUESTS", 100)
	if err != nil {
		return nil, err
	}
	cfg.RateLimit.Requests = requests

	window, err := durationEnv("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.RateLimit.Window = window

	// API Key configuration (optional, for service-to-service maintenance routes)
	cfg.APIKey = os.Getenv("API_KEY")

	cfg.MigrationsPath = os.Getenv("MIGRATIONS_PATH")

	return cfg, nil
}

// loadDatabase reads the required database settings using the given variable prefix
func loadDatabase(cfg *Config, prefix string) error {
	required := map[string]*string{
		"DB_HOST":     &cfg.Database.Host,
		"DB_USER":     &cfg.Database.User,
		"DB_PASSWORD": &cfg.Database.Password,
		"DB_NAME":     &cfg.Database.DBName,
	}
	for _, name := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
		value := os.Getenv(prefix + name)
		if value == "" {
			return fmt.Errorf("%s%s is required", prefix, name)
		}
		*required[name] = value
	}

	dbPortStr := os.Getenv(prefix + "DB_PORT")
	if dbPortStr == "" {
		return fmt.Errorf("%sDB_PORT is required", prefix)
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return fmt.Errorf("invalid %sDB_PORT: %w", prefix, err)
	}
	cfg.Database.Port = dbPort

	return nil
}

func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return value, nil
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return value, nil
}

// parseOrigins splits a comma-separated origin list, allowing all origins when none are set
func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&multiStatements=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}
