// Package cli provides common CLI initialization utilities shared by the
// spendbook entry point.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"spendbook/internal/backend"
	"spendbook/internal/config"
	"spendbook/internal/log"
	"spendbook/internal/taxonomy"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger := log.New(log.DefaultConfig())
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// SetupLogger initializes structured logging from the configuration and sets
// it as the default logger.
func SetupLogger(cfg *config.Config) *log.Logger {
	logger := log.New(log.Config{
		Level:      cfg.SlogLevel(),
		Component:  log.ComponentApp,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	log.SetDefault(logger)
	return logger
}

// InitSnapshotStore builds the configured snapshot store.
// Returns the store or exits the process on failure.
func InitSnapshotStore(logger *log.Logger, cfg *config.Config) *backend.Result {
	factory := backend.NewFactory(logger)
	res, err := factory.CreateStore(backend.FromAppConfig(cfg))
	if err != nil {
		logger.Error("Failed to initialize snapshot store", log.FieldError, err, log.FieldBackend, cfg.SnapshotBackend)
		os.Exit(1)
	}
	return res
}

// LoadTaxonomy loads the category taxonomy from the configured file, falling
// back to the built-in defaults when none is configured.
func LoadTaxonomy(logger *log.Logger, cfg *config.Config) *taxonomy.Taxonomy {
	if cfg.CategoriesFile == "" {
		return taxonomy.Default()
	}
	tax, err := taxonomy.LoadFile(cfg.CategoriesFile)
	if err != nil {
		logger.Warn("Failed to load categories file, using defaults",
			log.FieldError, err, "path", cfg.CategoriesFile)
		return taxonomy.Default()
	}
	return tax
}
