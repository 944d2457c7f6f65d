// Package tui provides an interactive terminal user interface for ServiLink.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session exposes the current session state.
	Session driving.SessionService

	// Auth signs users in and out.
	Auth driving.AuthService

	// Search queries the service catalogue.
	Search driving.SearchService

	// Catalog reads services and their reviews.
	Catalog driving.CatalogService

	// Jobs drives the job lifecycle.
	Jobs driving.JobService

	// Profile reads user profiles and skills. Optional.
	Profile driving.ProfileService

	// Settings provides listing preferences. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Jobs == nil {
		return ErrMissingJobService
	}
	return nil
}

// pageSize returns the configured listing page size.
func (p *Ports) pageSize() int {
	if p.Settings == nil {
		return 0
	}
	s, err := p.Settings.Get()
	if err != nil {
		return 0
	}
	return s.Listing.PageSize
}
