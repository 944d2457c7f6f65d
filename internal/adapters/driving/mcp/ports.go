package mcp

import (
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search queries the service catalogue.
	Search driving.SearchService

	// Catalog reads single services and their reviews.
	Catalog driving.CatalogService

	// Jobs drives the job lifecycle. Optional.
	Jobs driving.JobService

	// Session identifies the user the job tools act for. Optional.
	Session driving.SessionService

	// Settings provides the listing page size. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	// Jobs and Session are optional: without them only catalogue tools run
	return nil
}

func (p *Ports) jobsEnabled() bool {
	return p.Jobs != nil && p.Session != nil
}

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
