package domain

import "time"

// Default settings values.
const (
	DefaultAPIBaseURL        = "http://localhost:8000"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultRequestsPerSecond = 10.0
	DefaultBurst             = 20
	DefaultLandingAddr       = "127.0.0.1:8080"
)

// AppSettings represents the complete application configuration.
type AppSettings struct {
	API     APISettings
	Listing ListingSettings
	Landing LandingSettings
}

// APISettings configures the backend client.
type APISettings struct {
	// BaseURL is the root of the marketplace REST API.
	BaseURL string
	// Timeout bounds each request.
	Timeout time.Duration
	// RequestsPerSecond throttles outgoing requests.
	RequestsPerSecond float64
	// Burst is the limiter's bucket size.
	Burst int
}

// ListingSettings configures search result pagination.
type ListingSettings struct {
	PageSize int
}

// LandingSettings configures the landing page server.
type LandingSettings struct {
	Addr string
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:           DefaultAPIBaseURL,
			Timeout:           DefaultRequestTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
		Listing: ListingSettings{PageSize: DefaultPageSize},
		Landing: LandingSettings{Addr: DefaultLandingAddr},
	}
}

// Validate checks that the settings are usable.
func (s AppSettings) Validate() error {
	if s.API.BaseURL == "" {
		return ErrInvalidInput
	}
	if s.API.Timeout <= 0 || s.API.RequestsPerSecond <= 0 || s.API.Burst < 1 {
		return ErrInvalidInput
	}
	if s.Listing.PageSize < 1 {
		return ErrInvalidInput
	}
	return nil
}
