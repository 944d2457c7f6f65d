package driving

import (
	"context"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

// SessionService owns the local login state.
type SessionService interface {
	// Login stores the token and profile and marks the session authenticated.
	Login(ctx context.Context, token string, user domain.User) error

	// Logout clears the token and profile together.
	Logout(ctx context.Context) error

	// UpdateUser replaces the cached profile, keeping the token.
	UpdateUser(ctx context.Context, user domain.User) error

	// Rehydrate reloads the session from storage.
	Rehydrate(ctx context.Context) error

	// Current returns a snapshot of the session.
	Current() domain.SessionState

	// Token returns the bearer token, or an empty string when anonymous.
	Token() string
}

// AuthService covers sign-in and registration.
type AuthService interface {
	// SignIn authenticates against the backend and starts a session.
	SignIn(ctx context.Context, email, password string) (*domain.User, error)

	// Register creates an account. It does not sign in.
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)

	// SignOut ends the session.
	SignOut(ctx context.Context) error
}
