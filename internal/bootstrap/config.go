package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/target/foodcart/config"
)

// InitLogger initializes the structured logger on stdout and installs it as the default.
func InitLogger() *slog.Logger {
	return InitLoggerTo(os.Stdout, slog.LevelInfo)
}

// InitLoggerTo installs a JSON logger writing to w at the given level.
func InitLoggerTo(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}
	return ParseConfig()
}

// ParseConfig parses the process environment without touching .env.
func ParseConfig() (config.AppConfig, error) {
	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.Sanitize()
	return cfg, nil
}

// ValidateServerConfig reports settings the API server cannot start without.
func ValidateServerConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("server config is required")
	}
	if err := cfg.Auth.Validate(); err != nil {
		return fmt.Errorf("invalid auth configuration: %w", err)
	}
	return nil
}
