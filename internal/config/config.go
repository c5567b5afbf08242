package config

import (
	"fmt"
	"os"
	"strconv"

	"collections/internal/logger"
)

// Store drivers
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type Config struct {
	// Persistence
	StoreDriver string
	DataDir     string
	DatabaseURL string

	// Google Sheets
	GoogleSheetURL string

	// Bonus
	DefaultSalary float64

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	salary, err := strconv.ParseFloat(getEnv("DEFAULT_SALARY", "10000"), 64)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: DEFAULT_SALARY: %w", err)
	}

	config := &Config{
		StoreDriver:    getEnv("STORE_DRIVER", DriverFile),
		DataDir:        getEnv("DATA_DIR", ".collections"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		GoogleSheetURL: getEnv("GOOGLE_SHEET_URL", ""),
		DefaultSalary:  salary,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:      getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverFile:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the file store")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverFile, DriverPostgres, c.StoreDriver)
	}
	if c.DefaultSalary < 0 {
		return fmt.Errorf("DEFAULT_SALARY must not be negative")
	}
	return nil
}

// RequireSheetURL reports an error when no Google Sheet is configured.
func (c *Config) RequireSheetURL() error {
	if c.GoogleSheetURL == "" {
		return fmt.Errorf("GOOGLE_SHEET_URL is required")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
