// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"rating-engine/internal/errors"
	"rating-engine/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Rating contains rate table configuration
	Rating RatingConfig `json:"rating"`

	// Output contains CLI output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// CORSOrigin is the value of Access-Control-Allow-Origin
	CORSOrigin string `json:"cors_origin"`

	// MetricsEnabled exposes GET /metrics
	MetricsEnabled bool `json:"metrics_enabled"`

	// RateLimitRPS is the sustained request budget; zero disables limiting
	RateLimitRPS float64 `json:"rate_limit_rps"`

	// RateLimitBurst is the token bucket size
	RateLimitBurst int `json:"rate_limit_burst"`
}

// RatingConfig contains rate table settings
type RatingConfig struct {
	// RatesFile overrides the built-in tables (.yaml, .yml, .hcl or .json)
	RatesFile string `json:"rates_file,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr:           ":8080",
			CORSOrigin:     "*",
			MetricsEnabled: true,
			RateLimitRPS:   0,
			RateLimitBurst: 20,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. The file must exist; callers that
// have no path should start from Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Config("config file not found: "+path, err)
		}
		return nil, errors.Config("read config file "+path, err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadWithEnv loads path (if set), then applies a .env file and the
// RATING_* environment variables on top.
func LoadWithEnv(path string) (*Config, error) {
	config := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load(".env")

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields from RATING_* environment variables.
func (c *Config) ApplyEnv() error {
	loadEnvString(&c.Server.Addr, "RATING_HTTP_ADDR")
	loadEnvString(&c.Server.CORSOrigin, "RATING_CORS_ORIGIN")
	loadEnvString(&c.Rating.RatesFile, "RATING_RATES_FILE")
	loadEnvString(&c.Logging.Level, "RATING_LOG_LEVEL")
	loadEnvString(&c.Logging.Format, "RATING_LOG_FORMAT")

	if err := loadEnvBool(&c.Server.MetricsEnabled, "RATING_METRICS_ENABLED"); err != nil {
		return err
	}
	if err := loadEnvFloat(&c.Server.RateLimitRPS, "RATING_RATE_LIMIT_RPS"); err != nil {
		return err
	}
	if err := loadEnvInt(&c.Server.RateLimitBurst, "RATING_RATE_LIMIT_BURST"); err != nil {
		return err
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Addr == "" {
		problems = append(problems, "server.addr must not be empty")
	}
	if c.Server.RateLimitRPS < 0 {
		problems = append(problems, "server.rate_limit_rps must not be negative")
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst < 1 {
		problems = append(problems, "server.rate_limit_burst must be at least 1 when rate limiting is enabled")
	}

	validLogFormats := []string{"console", "json"}
	if !contains(validLogFormats, c.Logging.Format) {
		problems = append(problems, fmt.Sprintf("logging.format must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	validOutputFormats := []string{"cli", "json"}
	if !contains(validOutputFormats, c.Output.DefaultFormat) {
		problems = append(problems, fmt.Sprintf("output.default_format must be one of: %s", strings.Join(validOutputFormats, ", ")))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

func loadEnvString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func loadEnvInt(target *int, key string) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	}
	return nil
}

func loadEnvFloat(target *float64, key string) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number value for %s: %v", key, err)
		}
		*target = parsed
	}
	return nil
}

func loadEnvBool(target *bool, key string) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	}
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
