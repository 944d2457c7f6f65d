package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
	"github.com/servilink/servilink-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService keeps the logged-in user in memory and mirrors it to a
// SessionStore. Each operation performs one store call followed by one
// in-memory update, so a failed write never changes what callers see.
type SessionService struct {
	store     driven.SessionStore
	inspector driven.TokenInspector
	now       func() time.Time

	mu      sync.RWMutex
	status  domain.SessionStatus
	session *domain.Session
}

// NewSessionService creates a session service in the Loading state.
// inspector may be nil; tokens are then never considered expired.
func NewSessionService(store driven.SessionStore, inspector driven.TokenInspector) *SessionService {
	return &SessionService{
		store:     store,
		inspector: inspector,
		now:       time.Now,
		status:    domain.SessionLoading,
	}
}

// Login stores the token and profile and marks the session authenticated.
func (s *SessionService) Login(ctx context.Context, token string, user domain.User) error {
	if token == "" || user.ID == 0 {
		return fmt.Errorf("login: %w", domain.ErrInvalidInput)
	}
	user.Normalize()

	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.store.Save(ctx, token, profile); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	session := &domain.Session{Token: token, User: user, ExpiresAt: s.expiry(token)}

	s.mu.Lock()
	s.status = domain.SessionAuthenticated
	s.session = session
	s.mu.Unlock()

	logger.Debug("session: logged in as user %d (%s)", user.ID, user.Role)
	return nil
}

// Logout clears the token and profile together.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.mu.Lock()
	s.status = domain.SessionAnonymous
	s.session = nil
	s.mu.Unlock()

	logger.Debug("session: logged out")
	return nil
}

// UpdateUser replaces the cached profile, keeping the token.
func (s *SessionService) UpdateUser(ctx context.Context, user domain.User) error {
	s.mu.RLock()
	current := s.session
	s.mu.RUnlock()
	if current == nil {
		return domain.ErrAuthRequired
	}

	user.Normalize()
	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	s.mu.Lock()
	if s.session != nil {
		updated := *s.session
		updated.User = user
		s.session = &updated
	}
	s.mu.Unlock()
	return nil
}

// Rehydrate reloads the session from storage. Incomplete, unreadable or
// expired data is cleared and the session becomes anonymous.
func (s *SessionService) Rehydrate(ctx context.Context) error {
	s.mu.Lock()
	s.status = domain.SessionLoading
	s.mu.Unlock()

	session, reason, err := s.read(ctx)
	if err != nil {
		s.setAnonymous()
		return err
	}
	if reason != nil {
		logger.Warn("session: discarding stored session: %v", reason)
		if err := s.store.Clear(ctx); err != nil {
			s.setAnonymous()
			return fmt.Errorf("clear session: %w", err)
		}
	}

	if session == nil {
		s.setAnonymous()
		return nil
	}

	s.mu.Lock()
	s.status = domain.SessionAuthenticated
	s.session = session
	s.mu.Unlock()

	logger.Debug("session: restored user %d", session.User.ID)
	return nil
}

// read loads the stored entries. A non-nil reason means the store holds
// data that must be cleared; err is a storage failure.
func (s *SessionService) read(ctx context.Context) (session *domain.Session, reason, err error) {
	token, profile, err := s.store.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load session: %w", err)
	}

	switch {
	case token == "" && len(profile) == 0:
		return nil, nil, nil
	case token == "" || len(profile) == 0:
		return nil, fmt.Errorf("%w: token and profile must both be present", domain.ErrSessionCorrupt), nil
	}

	var user domain.User
	if err := json.Unmarshal(profile, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionCorrupt, err), nil
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: profile has no id", domain.ErrSessionCorrupt), nil
	}
	user.Normalize()

	session = &domain.Session{Token: token, User: user, ExpiresAt: s.expiry(token)}
	if session.Expired(s.now()) {
		return nil, domain.ErrAuthExpired, nil
	}
	return session, nil, nil
}

// Current returns a snapshot of the session.
func (s *SessionService) Current() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := domain.SessionState{Status: s.status}
	if s.session != nil {
		copied := *s.session
		state.Session = &copied
	}
	return state
}

// Token returns the bearer token, or an empty string when anonymous.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// RequireUser returns the logged-in user or ErrAuthRequired.
func (s *SessionService) RequireUser() (domain.User, error) {
	u := s.Current().User()
	if u == nil {
		return domain.User{}, domain.ErrAuthRequired
	}
	return *u, nil
}

func (s *SessionService) setAnonymous() {
	s.mu.Lock()
	s.status = domain.SessionAnonymous
	s.session = nil
	s.mu.Unlock()
}

func (s *SessionService) expiry(token string) time.Time {
	if s.inspector == nil {
		return time.Time{}
	}
	info, err := s.inspector.Inspect(token)
	if err != nil {
		return time.Time{}
	}
	return info.ExpiresAt
}
