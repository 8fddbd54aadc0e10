package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendbook/internal/account"
	"spendbook/internal/core"
	"spendbook/internal/snapshot"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func testAccount(t *testing.T) *account.Account {
	t.Helper()
	a, err := account.New("alice", "secret")
	require.NoError(t, err)
	require.NoError(t, a.Ledger.Add(core.Expense{Date: "2024-01-05", Category: "Food", Amount: 12.50}))
	require.NoError(t, a.Ledger.Add(core.Expense{Date: "2024-01-06", Category: "Transport", Amount: -2.25}))
	return a
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := testAccount(t)

	require.NoError(t, s.Save(ctx, a))

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, a.Username, got.Username)
	assert.Equal(t, a.Credential, got.Credential)
	assert.Equal(t, a.Ledger.Entries(), got.Ledger.Entries())
	assert.True(t, got.CheckPassword("secret"))
}

func TestSaveUsesUsernameDatFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(context.Background(), testAccount(t)))

	_, err := os.Stat(filepath.Join(s.dir, "alice.dat"))
	assert.NoError(t, err)
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := testAccount(t)

	require.NoError(t, s.Save(ctx, a))
	require.NoError(t, a.Ledger.Add(core.Expense{Date: "2024-02-01", Category: "Rent", Amount: 800}))
	require.NoError(t, s.Save(ctx, a))

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Ledger.Len())
}

func TestLoadMissingSnapshot(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "nobody")
	assert.ErrorIs(t, err, snapshot.ErrNotFound)
}

func TestLoadCorruptSnapshot(t *testing.T) {
	s := newTestStore(t)
	cases := map[string][]byte{
		"empty":      {},
		"bad magic":  []byte("XXXX rest of the file"),
		"truncated":  {'S', 'P', 'B', 'K', 0, 1, 0, 0},
		"trailing":   append(mustEncode(t), 0xFF),
		"bad header": {'S', 'P', 'B', 'K', 0, 99},
	}
	for name, raw := range cases {
		require.NoError(t, os.WriteFile(filepath.Join(s.dir, "alice.dat"), raw, 0o644), name)
		_, err := s.Load(context.Background(), "alice")
		assert.ErrorIs(t, err, snapshot.ErrCorrupt, name)
	}
}

func TestLoadRejectsUsernameMismatch(t *testing.T) {
	s := newTestStore(t)
	raw := mustEncode(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, "mallory.dat"), raw, 0o644))

	_, err := s.Load(context.Background(), "mallory")
	assert.ErrorIs(t, err, snapshot.ErrCorrupt)
}

func TestRoundTripEmptyLedger(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a, err := account.New("bob", "pw")
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, a))
	got, err := s.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, got.Ledger.Len())
}

func mustEncode(t *testing.T) []byte {
	t.Helper()
	raw, err := encode(testAccount(t))
	require.NoError(t, err)
	return raw
}
