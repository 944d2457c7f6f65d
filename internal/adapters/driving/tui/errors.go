package tui

import "errors"

var (
	// ErrMissingSessionService is returned when the session service is not provided.
	ErrMissingSessionService = errors.New("tui: session service is required")

	// ErrMissingAuthService is returned when the auth service is not provided.
	ErrMissingAuthService = errors.New("tui: auth service is required")

	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("tui: search service is required")

	// ErrMissingCatalogService is returned when the catalog service is not provided.
	ErrMissingCatalogService = errors.New("tui: catalog service is required")

	// ErrMissingJobService is returned when the job service is not provided.
	ErrMissingJobService = errors.New("tui: job service is required")

	// ErrInvalidPorts is returned when ports validation fails.
	ErrInvalidPorts = errors.New("tui: invalid ports configuration")
)
