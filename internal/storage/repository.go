// Package storage persists account snapshots in a SQLite archive, one row
// per account plus a position-ordered expense table.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"spendbook/internal/account"
	"spendbook/internal/core"
	"spendbook/internal/snapshot"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save writes the full account snapshot in one transaction: the account row
// is upserted and the expense rows are replaced wholesale, keyed by their
// ledger position so insertion order round-trips.
func (s *SQLiteStore) Save(ctx context.Context, a *account.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO accounts (username, credential, saved_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(username) DO UPDATE SET
			credential = excluded.credential,
			saved_at = CURRENT_TIMESTAMP
	`, a.Username, a.Credential)
	if err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE username = ?", a.Username); err != nil {
		return fmt.Errorf("clear previous expenses: %w", err)
	}

	for i, e := range a.Ledger.Entries() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO expenses (username, position, date, category, amount)
			VALUES (?, ?, ?, ?, ?)
		`, a.Username, i, e.Date, e.Category, e.Amount)
		if err != nil {
			return fmt.Errorf("insert expense %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}
	return nil
}

// Load rebuilds the account for username from the archive. Returns
// snapshot.ErrNotFound when no snapshot row exists.
func (s *SQLiteStore) Load(ctx context.Context, username string) (*account.Account, error) {
	var credential []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT credential FROM accounts WHERE username = ?", username,
	).Scan(&credential)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", username, snapshot.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select account: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, category, amount
		FROM expenses
		WHERE username = ?
		ORDER BY position
	`, username)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	defer rows.Close()

	var entries []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.Date, &e.Category, &e.Amount); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return account.Restore(username, credential, entries), nil
}
