package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("api.base_url", "https://api.servilink.test"))
	require.NoError(t, store.Set("listing.page_size", 12))
	require.NoError(t, store.Set("api.requests_per_second", 2.5))

	assert.Equal(t, "https://api.servilink.test", store.GetString("api.base_url"))
	assert.Equal(t, 12, store.GetInt("listing.page_size"))
	assert.InDelta(t, 2.5, store.GetFloat("api.requests_per_second"), 0.0001)
	assert.InDelta(t, 12.0, store.GetFloat("listing.page_size"), 0.0001)

	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("api.base_url"))
	assert.Zero(t, store.GetFloat("api.base_url"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Persistence_WritesTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("api.base_url", "http://localhost:9000"))
	require.NoError(t, store.Set("api.burst", 5))
	require.NoError(t, store.Set("landing.addr", ":8081"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[api]")
	assert.Contains(t, string(raw), "[landing]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", reloaded.GetString("api.base_url"))
	assert.Equal(t, 5, reloaded.GetInt("api.burst"))
	assert.Equal(t, ":8081", reloaded.GetString("landing.addr"))
}

func TestConfigStore_Unset(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("listing.page_size", 3))
	require.NoError(t, store.Unset("listing.page_size"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := reloaded.Get("listing.page_size")
	assert.False(t, ok)
}

func TestConfigStore_Load_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[api]\nbase_url = \"http://example.test\"\nrequests_per_second = 4\n\n[listing]\npage_size = 6\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://example.test", store.GetString("api.base_url"))
	assert.InDelta(t, 4.0, store.GetFloat("api.requests_per_second"), 0.0001)
	assert.Equal(t, 6, store.GetInt("listing.page_size"))
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := store.Get("api.base_url")
	assert.False(t, ok)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[api\nbase_url ="), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("api.burst", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("api.burst")
		}()
	}
	wg.Wait()

	_, ok := store.Get("api.burst")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"api.base_url":      "x",
		"listing.page_size": 9,
		"top":               true,
	})

	api, ok := nested["api"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "x", api["base_url"])
	assert.Equal(t, true, nested["top"])
	assert.Equal(t, map[string]any{"api.base_url": "x", "listing.page_size": 9, "top": true}, flattenMap(nested, ""))
}
