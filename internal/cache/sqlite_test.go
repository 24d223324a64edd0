package cache_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rohmanhakim/nps-sites/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteBackend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	backend, err := cache.NewSQLiteBackend(path)
	require.NoError(t, err)

	store := cache.NewStore(backend, nil)
	require.Nil(t, store.Put("https://www.nps.gov", cache.TextValue("<html>directory</html>")))
	require.Nil(t, store.Put("places?origin=49931", cache.JSONValue(json.RawMessage(`{"searchResults":[]}`))))
	require.NoError(t, backend.Close())

	reopenedBackend, err := cache.NewSQLiteBackend(path)
	require.NoError(t, err)
	defer reopenedBackend.Close()

	reopened := cache.Open(reopenedBackend, nil)
	require.Equal(t, 2, reopened.Len())

	text, ok := reopened.Get("https://www.nps.gov")
	require.True(t, ok)
	assert.Equal(t, cache.KindText, text.Kind())
	assert.Equal(t, "<html>directory</html>", text.Text())

	structured, ok := reopened.Get("places?origin=49931")
	require.True(t, ok)
	assert.Equal(t, cache.KindJSON, structured.Kind())
	assert.JSONEq(t, `{"searchResults":[]}`, string(structured.JSON()))
}

func TestSQLiteBackend_SaveReplacesSnapshot(t *testing.T) {
	backend, err := cache.NewSQLiteBackend(":memory:")
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, backend.Save(map[string]cache.Value{
		"a": cache.TextValue("1"),
		"b": cache.TextValue("2"),
	}))
	require.NoError(t, backend.Save(map[string]cache.Value{
		"b": cache.TextValue("3"),
	}))

	entries, err := backend.Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "3", entries["b"].Text())
}

func TestSQLiteBackend_EmptyDatabase(t *testing.T) {
	backend, err := cache.NewSQLiteBackend(":memory:")
	require.NoError(t, err)
	defer backend.Close()

	entries, err := backend.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, "sqlite::memory:", backend.Location())
}
