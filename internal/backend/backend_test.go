package backend_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checklist/internal/backend"
	"checklist/internal/backend/filekv"
	"checklist/internal/backend/memkv"
	"checklist/internal/config"
)

func TestOpen_File(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	cfg := &config.Config{Storage: config.StorageConfig{Backend: backend.File, Path: dir, Key: "tasks"}}

	adapter, closeFn, err := backend.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	fs, ok := adapter.(*filekv.Store)
	require.True(t, ok, "expected *filekv.Store, got %T", adapter)
	assert.Equal(t, dir, fs.Dir())
}

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: backend.Memory, Key: "tasks"}}

	adapter, closeFn, err := backend.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	_, ok := adapter.(*memkv.Store)
	assert.True(t, ok, "expected *memkv.Store, got %T", adapter)
}

func TestOpen_MySQLBadDSN(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: backend.MySQL, DSN: "nope", Key: "tasks"}}

	_, _, err := backend.Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpen_Unknown(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: "redis"}}

	_, _, err := backend.Open(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend: redis")
}
