package backend

import (
	"fmt"

	"spendbook/internal/log"
	"spendbook/internal/snapshot/file"
	"spendbook/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new snapshot store factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateStore implements Factory.CreateStore
func (f *DefaultFactory) CreateStore(config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteStore(config)
	default:
		return f.createFileStore(config)
	}
}

func (f *DefaultFactory) createFileStore(config Config) (*Result, error) {
	store, err := file.NewStore(config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file snapshot store: %w", err)
	}

	f.logger.Info("Initialized file snapshot store", log.FieldBackend, FileBackend, "data_dir", config.DataDir)

	return &Result{Store: store, Cleanup: nil}, nil
}

func (f *DefaultFactory) createSQLiteStore(config Config) (*Result, error) {
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite snapshot store: %w", err)
	}

	f.logger.Info("Initialized SQLite snapshot store", log.FieldBackend, SQLiteBackend, "db_path", config.SQLiteDBPath)

	return &Result{Store: store, Cleanup: store.Close}, nil
}
