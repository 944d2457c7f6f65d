package services

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAPIBaseURL    = "api.base_url"
	keyAPITimeout    = "api.timeout_seconds"
	keyAPIRate       = "api.requests_per_second"
	keyAPIBurst      = "api.burst"
	keyPageSize      = "listing.page_size"
	keyLandingAddr   = "landing.addr"
	envAPIBaseURLKey = "SERVILINK_API_URL"
)

var settingKeys = []string{keyAPIBaseURL, keyAPITimeout, keyAPIRate, keyAPIBurst, keyPageSize, keyLandingAddr}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
// lookupEnv may be nil, in which case environment overrides are ignored.
func NewSettingsService(configStore driven.ConfigStore, lookupEnv func(string) (string, bool)) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   lookupEnv,
	}
}

// Get retrieves current application settings.
// SERVILINK_API_URL overrides the stored base URL.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	return s.load(true), nil
}

func (s *SettingsService) load(withEnv bool) *domain.AppSettings {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:           s.getString(keyAPIBaseURL, defaults.API.BaseURL),
			Timeout:           time.Duration(s.getInt(keyAPITimeout, int(defaults.API.Timeout/time.Second))) * time.Second,
			RequestsPerSecond: s.getFloat(keyAPIRate, defaults.API.RequestsPerSecond),
			Burst:             s.getInt(keyAPIBurst, defaults.API.Burst),
		},
		Listing: domain.ListingSettings{
			PageSize: s.getInt(keyPageSize, defaults.Listing.PageSize),
		},
		Landing: domain.LandingSettings{
			Addr: s.getString(keyLandingAddr, defaults.Landing.Addr),
		},
	}

	if withEnv && s.lookupEnv != nil {
		if url, ok := s.lookupEnv(envAPIBaseURLKey); ok && url != "" {
			settings.API.BaseURL = url
		}
	}

	return settings
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyAPIBaseURL, settings.API.BaseURL},
		{keyAPITimeout, int(settings.API.Timeout / time.Second)},
		{keyAPIRate, settings.API.RequestsPerSecond},
		{keyAPIBurst, settings.API.Burst},
		{keyPageSize, settings.Listing.PageSize},
		{keyLandingAddr, settings.Landing.Addr},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates one setting by key.
func (s *SettingsService) Set(key, value string) error {
	if !slices.Contains(settingKeys, key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	// Environment overrides are never written back.
	settings := s.load(false)
	switch key {
	case keyAPIBaseURL:
		settings.API.BaseURL = value
	case keyLandingAddr:
		settings.Landing.Addr = value
	case keyAPIRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.API.RequestsPerSecond = f
	default:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		switch key {
		case keyAPITimeout:
			settings.API.Timeout = time.Duration(n) * time.Second
		case keyAPIBurst:
			settings.API.Burst = n
		case keyPageSize:
			settings.Listing.PageSize = n
		}
	}

	return s.Save(settings)
}

// Keys returns the settable keys.
func (s *SettingsService) Keys() []string {
	return slices.Clone(settingKeys)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if val := s.configStore.GetFloat(key); val > 0 {
		return val
	}
	return defaultVal
}
