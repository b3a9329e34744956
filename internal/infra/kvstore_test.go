package infra

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
)

func TestFileKVStore_SetGetDelete(t *testing.T) {
	store, err := NewFileKVStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get("logs")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set("logs", "Connected: 2024-01-02 10:00:00\n"))
	require.NoError(t, store.Set("total_connected_time", "5000"))

	got, err := store.Get("logs")
	require.NoError(t, err)
	assert.Equal(t, "Connected: 2024-01-02 10:00:00\n", got)

	require.NoError(t, store.Delete("logs"))
	_, err = store.Get("logs")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	total, err := store.Get("total_connected_time")
	require.NoError(t, err)
	assert.Equal(t, "5000", total)

	// Deleting again is fine
	assert.NoError(t, store.Delete("logs"))
}

func TestFileKVStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFileKVStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("k", "v"))

	second, err := NewFileKVStore(dir)
	require.NoError(t, err)
	got, err := second.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	// No temp files left behind
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFileKVStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := NewFileKVStoreWithPath(path)
	_, err := store.Get("logs")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestFileKVStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	store := NewFileKVStoreWithPath(path)
	_, err := store.Get("logs")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}
