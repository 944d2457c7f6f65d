package driven

import "context"

// SessionStore persists the bearer token and the serialised user profile.
// The two entries are always written and cleared together.
type SessionStore interface {
	// Load returns the stored token and profile.
	// Missing entries are returned as empty values, not errors.
	Load(ctx context.Context) (token string, profile []byte, err error)

	// Save stores both entries in one operation.
	Save(ctx context.Context, token string, profile []byte) error

	// SaveProfile replaces the profile and keeps the token.
	SaveProfile(ctx context.Context, profile []byte) error

	// Clear removes both entries in one operation.
	Clear(ctx context.Context) error
}
