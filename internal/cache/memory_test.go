package cache_test

import (
	"testing"

	"github.com/rohmanhakim/nps-sites/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_StartsEmpty(t *testing.T) {
	entries, err := cache.NewMemoryBackend().Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryBackend_SaveSnapshotsEntries(t *testing.T) {
	backend := cache.NewMemoryBackend()
	entries := map[string]cache.Value{"k": cache.TextValue("v")}
	require.NoError(t, backend.Save(entries))

	// mutating the caller's map after Save does not leak into the backend
	entries["other"] = cache.TextValue("x")

	loaded, err := backend.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Equal(t, "v", loaded["k"].Text())
}
