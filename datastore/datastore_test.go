package datastore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	ds, err := New(path)
	require.NoError(t, err)
	ds.Add("guild", map[string]any{"prefix": "?"})
	require.NoError(t, ds.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok := reopened.Get("guild")
	require.True(t, ok)
	assert.Equal(t, "?", value.(map[string]any)["prefix"])
}

func TestConcurrentSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	ds, err := New(path)
	require.NoError(t, err)
	defer ds.Close()

	// Explicit saves from several goroutines stand in for an external
	// SaveToFile call racing the autosave tick; the file must stay a single
	// intact snapshot throughout.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ds.Add(fmt.Sprintf("key-%d", n), "value")
			assert.NoError(t, ds.SaveToFile())
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data), "interleaved saves must never corrupt the file")
}

func TestSaveToFileAfterClose(t *testing.T) {
	ds, err := New(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	require.NoError(t, ds.Close())

	assert.Error(t, ds.SaveToFile())
}
