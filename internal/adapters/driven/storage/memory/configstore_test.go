package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("api.base_url", "http://api.test"))
	require.NoError(t, store.Set("listing.page_size", int64(12)))
	require.NoError(t, store.Set("api.requests_per_second", 2.5))

	assert.Equal(t, "http://api.test", store.GetString("api.base_url"))
	assert.Equal(t, 12, store.GetInt("listing.page_size"))
	assert.InDelta(t, 12.0, store.GetFloat("listing.page_size"), 0.001)
	assert.InDelta(t, 2.5, store.GetFloat("api.requests_per_second"), 0.001)

	// Wrong types and missing keys fall back to zero values.
	assert.Empty(t, store.GetString("listing.page_size"))
	assert.Zero(t, store.GetInt("api.base_url"))
	assert.Zero(t, store.GetFloat("missing"))
}

func TestConfigStore_Unset(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("landing.addr", ":9000"))
	require.NoError(t, store.Unset("landing.addr"))

	_, ok := store.Get("landing.addr")
	assert.False(t, ok)
}

func TestConfigStore_SetErr(t *testing.T) {
	store := NewConfigStore()
	store.SetErr = errors.New("disk full")

	assert.Error(t, store.Set("k", "v"))
	assert.Error(t, store.Unset("k"))
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("listing.page_size", n)
			_ = store.GetInt("listing.page_size")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("listing.page_size")
	assert.True(t, ok)
}
