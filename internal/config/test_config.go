package config

import (
	"time"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration for integration tests from TEST_-prefixed variables
// If the test database is not configured, returns a Config with empty database values
// which allows tests to use fallback DSN values
func LoadTestConfig() (*Config, error) {
	// Try loading from project root
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()

	cfg := &Config{
		JWT: JWTConfig{
			Secret:            "integration-test-secret",
			AccessTokenExpiry: time.Hour,
		},
	}

	if err := loadDatabase(cfg, "TEST_"); err != nil {
		// Return empty config to allow fallback DSN in tests
		return &Config{JWT: cfg.JWT}, nil
	}

	return cfg, nil
}
