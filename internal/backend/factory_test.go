package backend

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "spendbook/internal/config"
)

func TestCreateFileStore(t *testing.T) {
	f := NewFactory(nil)

	res, err := f.CreateStore(Config{Type: FileBackend, DataDir: t.TempDir()})
	require.NoError(t, err)
	assert.NotNil(t, res.Store)
	assert.Nil(t, res.Cleanup)
}

func TestCreateSQLiteStore(t *testing.T) {
	f := NewFactory(nil)

	res, err := f.CreateStore(Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "spendbook.db"),
	})
	require.NoError(t, err)
	assert.NotNil(t, res.Store)
	require.NotNil(t, res.Cleanup)
	assert.NoError(t, res.Cleanup())
}

func TestCreateStoreRejectsUnknownType(t *testing.T) {
	f := NewFactory(nil)

	_, err := f.CreateStore(Config{Type: "postgres"})
	assert.Error(t, err)
}

func TestFromAppConfig(t *testing.T) {
	cfg := &appconfig.Config{
		SnapshotBackend: "sqlite",
		DataDir:         "./data",
		SQLiteDBPath:    "./data/x.db",
	}
	got := FromAppConfig(cfg)
	assert.Equal(t, SQLiteBackend, got.Type)
	assert.Equal(t, "./data", got.DataDir)
	assert.Equal(t, "./data/x.db", got.SQLiteDBPath)
}

func TestTypeIsValid(t *testing.T) {
	assert.True(t, FileBackend.IsValid())
	assert.True(t, SQLiteBackend.IsValid())
	assert.False(t, Type("postgres").IsValid())
}
