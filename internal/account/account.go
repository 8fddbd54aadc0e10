// Package account holds user accounts and the in-memory account directory.
package account

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"spendbook/internal/core"
)

var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUnknownUser       = errors.New("unknown username")
	ErrWrongPassword     = errors.New("wrong password")
	ErrInvalidUsername   = errors.New("invalid username")
	ErrEmptyPassword     = errors.New("empty password")
)

// Account owns one ledger and the credential derived from the user's
// password. The username is immutable after creation.
type Account struct {
	Username   string
	Credential []byte // bcrypt hash
	Ledger     *core.Ledger
}

// New creates an account with an empty ledger and a bcrypt-derived credential.
func New(username, password string) (*Account, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("derive credential: %w", err)
	}
	return &Account{
		Username:   username,
		Credential: hash,
		Ledger:     core.NewLedger(),
	}, nil
}

// Restore rebuilds an account from persisted state without re-deriving the
// credential. Used by snapshot stores.
func Restore(username string, credential []byte, entries []core.Expense) *Account {
	return &Account{
		Username:   username,
		Credential: append([]byte(nil), credential...),
		Ledger:     core.RestoreLedger(entries),
	}
}

// CheckPassword reports whether raw is the password the credential was
// derived from. It never returns an error: any mismatch or malformed
// credential reads as false.
func (a *Account) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword(a.Credential, []byte(raw)) == nil
}

// Usernames become snapshot file names, so path-meaningful characters are
// rejected up front.
func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrInvalidUsername
	}
	if strings.ContainsAny(username, `/\`) || strings.Contains(username, "..") {
		return ErrInvalidUsername
	}
	return nil
}
