// Package snapshot defines the port for persisting whole-account snapshots.
package snapshot

import (
	"context"
	"errors"

	"spendbook/internal/account"
)

var (
	// ErrNotFound means no snapshot exists for the requested username.
	ErrNotFound = errors.New("account snapshot not found")
	// ErrCorrupt means a snapshot exists but could not be decoded.
	ErrCorrupt = errors.New("corrupt account snapshot")
)

// Store persists and restores full account snapshots: username, credential
// and the ordered expense list. Save overwrites any previous snapshot for the
// same username. Load rebuilds a fresh account and must leave the caller's
// directory untouched on failure.
type Store interface {
	Save(ctx context.Context, a *account.Account) error
	Load(ctx context.Context, username string) (*account.Account, error)
}
