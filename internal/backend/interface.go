// Package backend selects and constructs the snapshot store implementation.
package backend

import (
	"spendbook/internal/snapshot"
)

// Type identifies a snapshot store implementation.
type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend:
		return true
	}
	return false
}

// Result bundles a constructed store with its cleanup hook. Cleanup may be
// nil for stores without resources to release.
type Result struct {
	Store   snapshot.Store
	Cleanup func() error
}

// Factory creates snapshot stores from configuration.
type Factory interface {
	CreateStore(config Config) (*Result, error)
}
