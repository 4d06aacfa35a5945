// Package cli provides common initialization for the kakeibo binaries:
// logging, .env loading, configuration and the ledger store.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"kakeibo/internal/config"
	"kakeibo/internal/storage"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the ledger store at the given path, running migrations and
// seeding defaults. Exits the process on failure.
func InitStore(logger *slog.Logger, dbPath string) *storage.Repository {
	repo, err := storage.New(dbPath)
	if err != nil {
		logger.Error("Failed to initialize ledger store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}
