// Package domain defines the core business entities for ServiLink.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - User: A marketplace account, either vendor or contractor
//   - Service: An offering posted by a vendor
//   - Job: An engagement between a contractor and a vendor
//   - Review: A rating left on a completed job
//   - JobView: The derived, display-ready state of a job for one viewer
//   - Listing: Client-side pagination over search results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
