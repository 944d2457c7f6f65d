package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService signs users in and out and registers new accounts.
type AuthService struct {
	users   driven.UserGateway
	session driving.SessionService
}

// NewAuthService creates a new auth service.
func NewAuthService(users driven.UserGateway, session driving.SessionService) *AuthService {
	return &AuthService{users: users, session: session}
}

// SignIn authenticates against the backend and starts a session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", domain.ErrInvalidInput)
	}

	token, user, err := s.users.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := s.session.Login(ctx, token, *user); err != nil {
		return nil, err
	}

	user.Normalize()
	return user, nil
}

// Register creates an account. It does not sign in.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Name = strings.TrimSpace(reg.Name)
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("name, email, password and role are required: %w", err)
	}

	user, err := s.users.Register(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	user.Normalize()
	return user, nil
}

// SignOut ends the session.
func (s *AuthService) SignOut(ctx context.Context) error {
	return s.session.Logout(ctx)
}
