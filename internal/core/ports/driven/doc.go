// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - UserGateway, SkillGateway, ServiceGateway, JobGateway, ReviewGateway:
//     the marketplace REST API. One HTTP client implements all of them.
//   - SessionStore: Token and cached profile persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TokenInspector: Reads expiry from bearer tokens. Without it, tokens never expire locally.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
