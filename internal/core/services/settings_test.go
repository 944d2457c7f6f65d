package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servilink/servilink-cli/internal/adapters/driven/storage/memory"
	"github.com/servilink/servilink-cli/internal/core/domain"
)

func noEnv(string) (string, bool) { return "", false }

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.base_url", "https://api.servilink.test")
	_ = store.Set("api.timeout_seconds", int64(5))
	_ = store.Set("api.requests_per_second", int64(3))
	_ = store.Set("listing.page_size", int64(12))

	settings, err := NewSettingsService(store, noEnv).Get()

	require.NoError(t, err)
	assert.Equal(t, "https://api.servilink.test", settings.API.BaseURL)
	assert.Equal(t, 5*time.Second, settings.API.Timeout)
	assert.InDelta(t, 3.0, settings.API.RequestsPerSecond, 0)
	assert.Equal(t, 12, settings.Listing.PageSize)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("listing.page_size", int64(-3))
	_ = store.Set("api.requests_per_second", "fast")

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPageSize, settings.Listing.PageSize)
	assert.InDelta(t, domain.DefaultRequestsPerSecond, settings.API.RequestsPerSecond, 0)
}

func TestSettingsService_EnvOverridesBaseURL(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.base_url", "http://stored")
	env := func(key string) (string, bool) {
		if key == "SERVILINK_API_URL" {
			return "http://from-env", true
		}
		return "", false
	}
	service := NewSettingsService(store, env)

	settings, _ := service.Get()
	assert.Equal(t, "http://from-env", settings.API.BaseURL)

	// Setting another key must not persist the override.
	require.NoError(t, service.Set("listing.page_size", "6"))
	assert.Equal(t, "http://stored", store.GetString("api.base_url"))
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, noEnv)

	require.NoError(t, service.Set("api.base_url", "http://other:8000"))
	require.NoError(t, service.Set("api.requests_per_second", "2.5"))
	require.NoError(t, service.Set("api.timeout_seconds", "10"))

	settings, _ := service.Get()
	assert.Equal(t, "http://other:8000", settings.API.BaseURL)
	assert.InDelta(t, 2.5, settings.API.RequestsPerSecond, 0)
	assert.Equal(t, 10*time.Second, settings.API.Timeout)
}

func TestSettingsService_Set_Rejects(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), noEnv)

	assert.ErrorIs(t, service.Set("unknown.key", "x"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set("listing.page_size", "many"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set("listing.page_size", "0"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set("api.base_url", ""), domain.ErrInvalidInput)
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)
	keys := service.Keys()
	assert.Contains(t, keys, "api.base_url")
	assert.Contains(t, keys, "listing.page_size")
}
