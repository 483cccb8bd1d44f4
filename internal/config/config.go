// Package config loads service configuration from an optional YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig describes the SQLite database location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig holds JWT settings.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenDuration time.Duration `yaml:"token_duration"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultDBPath          = "./data/billsync.db"
	defaultTokenDuration   = 30 * 24 * time.Hour
	defaultLogLevel        = "info"
)

// Load reads configuration from the YAML file at path (skipped if path is
// empty or the file does not exist), then applies environment overrides and
// defaults. JWT_SECRET must be set one way or the other.
func Load(path string) (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Database: DatabaseConfig{Path: defaultDBPath},
		Auth:     AuthConfig{TokenDuration: defaultTokenDuration},
		Logging:  LoggingConfig{Level: defaultLogLevel},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.HTTP.Host = envOrDefault("SERVER_HOST", cfg.HTTP.Host)
	cfg.HTTP.Port = envIntOrDefault("SERVER_PORT", cfg.HTTP.Port)
	cfg.Database.Path = envOrDefault("DB_PATH", cfg.Database.Path)
	cfg.Auth.JWTSecret = envOrDefault("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Logging.Level = envOrDefault("LOG_LEVEL", cfg.Logging.Level)

	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret is required (set JWT_SECRET or auth.jwt_secret)")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
