package backend

import (
	appconfig "spendbook/internal/config"
)

// Config carries the store-selection settings.
type Config struct {
	Type         Type
	DataDir      string
	SQLiteDBPath string
}

// FromAppConfig converts the application config into a backend config.
func FromAppConfig(cfg *appconfig.Config) Config {
	return Config{
		Type:         Type(cfg.SnapshotBackend),
		DataDir:      cfg.DataDir,
		SQLiteDBPath: cfg.SQLiteDBPath,
	}
}
