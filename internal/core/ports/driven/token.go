package driven

import "github.com/servilink/servilink-cli/internal/core/domain"

// TokenInspector reads claims from a bearer token without verifying it.
// The backend is the only authority on token validity.
type TokenInspector interface {
	// Inspect returns the readable claims.
	// Opaque tokens return an error and are treated as non-expiring.
	Inspect(token string) (domain.TokenInfo, error)
}
