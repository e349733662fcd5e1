package config

import (
	"os"
	"strconv"
	"strings"

	"pricehypo/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data   DataConfig
	Server ServerConfig
	Batch  BatchConfig
	Report ReportConfig
	Log    LogConfig
}

// DataConfig holds the input dataset location
type DataConfig struct {
	File  string
	Sheet string // xlsx only; empty selects the first sheet
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// BatchConfig bounds concurrent analyses in batch mode
type BatchConfig struct {
	Workers int
}

// ReportConfig selects the default report rendering
type ReportConfig struct {
	Format string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// DefaultDataFile is the dataset the standalone run analyses when DATA_FILE is unset
const DefaultDataFile = "ToyotaCorolla (1).csv"

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			File:  getEnvOrDefault("DATA_FILE", DefaultDataFile),
			Sheet: getEnvOrDefault("DATA_SHEET", ""),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Batch: BatchConfig{
			Workers: getEnvIntOrDefault("BATCH_WORKERS", 4),
		},
		Report: ReportConfig{
			Format: strings.ToLower(getEnvOrDefault("REPORT_FORMAT", "text")),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Data.File) == "" {
		return errors.ConfigInvalid("DATA_FILE must not be blank")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	if config.Batch.Workers < 1 {
		return errors.ConfigInvalid("BATCH_WORKERS must be at least 1")
	}
	switch config.Report.Format {
	case "text", "json", "markdown", "html":
	default:
		return errors.ConfigInvalid("REPORT_FORMAT must be one of text, json, markdown, html")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
