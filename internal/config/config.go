// Package config loads service configuration from an optional YAML file, an
// optional .env file and the process environment, in that order of precedence
// (later sources win).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment         string         `yaml:"environment"`
	LogLevel            string         `yaml:"log_level"`
	HealthCheckSchedule string         `yaml:"health_check_schedule"`
	Server              ServerConfig   `yaml:"server"`
	Database            DatabaseConfig `yaml:"database"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	ConnectionString string        `yaml:"connection_string"`
	MaxOpenConns     int           `yaml:"max_open_conns"`
	MaxIdleConns     int           `yaml:"max_idle_conns"`
	ConnMaxLifetime  time.Duration `yaml:"conn_max_lifetime"`
}

func Default() *Config {
	return &Config{
		Environment:         "development",
		LogLevel:            "info",
		HealthCheckSchedule: "@every 1m",
		Server: ServerConfig{
			Port:            "8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    50,
			MaxIdleConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
		},
	}
}

// Load builds the configuration. path names an optional YAML file; an empty
// path skips it. A missing .env file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Environment = getEnvOrDefault("ENVIRONMENT", c.Environment)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.HealthCheckSchedule = getEnvOrDefault("HEALTH_CHECK_SCHEDULE", c.HealthCheckSchedule)
	c.Server.Port = getEnvOrDefault("SERVER_PORT", c.Server.Port)

	// DB_CONN_STRING is the name older deployments use.
	c.Database.ConnectionString = getEnvOrDefault("DB_CONN_STRING", c.Database.ConnectionString)
	c.Database.ConnectionString = getEnvOrDefault("DB_CONNECTION_STRING", c.Database.ConnectionString)

	var err error
	if c.Database.MaxOpenConns, err = parseIntEnv("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns); err != nil {
		return err
	}
	if c.Database.MaxIdleConns, err = parseIntEnv("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns); err != nil {
		return err
	}
	if c.Database.ConnMaxLifetime, err = parseDurationEnv("DB_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime); err != nil {
		return err
	}
	if c.Server.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

// Validate reports every required value that is missing or out of range.
func (c *Config) Validate() error {
	var missing []string
	if c.Database.ConnectionString == "" {
		missing = append(missing, "DB_CONNECTION_STRING")
	}
	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}

	if c.Database.MaxOpenConns < 1 {
		return errors.New("DB_MAX_OPEN_CONNS must be greater than 0")
	}
	if c.Database.MaxIdleConns < 0 {
		return errors.New("DB_MAX_IDLE_CONNS must not be negative")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c ServerConfig) Addr() string {
	return ":" + c.Port
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
