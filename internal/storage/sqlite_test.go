package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRoundTrip(t *testing.T) {
	store, err := OpenAt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Get("profile")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("profile", `{"name":"Traveler"}`))

	got, ok, err := store.Get("profile")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"Traveler"}`, got)
}

func TestSQLiteOverwrite(t *testing.T) {
	store, err := OpenAt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set("k", "first"))
	require.NoError(t, store.Set("k", "second"))

	got, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := OpenAt(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))
	require.NoError(t, store.Close())

	reopened, err := OpenAt(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestMemoryKV(t *testing.T) {
	m := NewMemory()
	_, ok, err := m.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set("k", "v"))
	got, ok, _ := m.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}
