// Package mcp provides an MCP (Model Context Protocol) server adapter for ServiLink.
// It lets AI assistants search services and follow the signed-in user's jobs.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingCatalogService is returned when the catalog service is not provided.
	ErrMissingCatalogService = errors.New("mcp: catalog service is required")

	// ErrJobsUnavailable is returned by job tools when no job or session
	// service was wired.
	ErrJobsUnavailable = errors.New("mcp: job tools are not available")
)
