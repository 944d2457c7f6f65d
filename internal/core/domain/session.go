package domain

import "time"

// SessionStatus is the tri-state of the local session.
type SessionStatus int

// Session states.
const (
	// SessionLoading is set while the cached session is being read.
	SessionLoading SessionStatus = iota
	// SessionAnonymous means nobody is logged in.
	SessionAnonymous
	// SessionAuthenticated means a token and profile are present.
	SessionAuthenticated
)

// String returns the string representation.
func (s SessionStatus) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is the logged-in user and the bearer token.
type Session struct {
	Token string
	User  User
	// ExpiresAt is read from the token claims. Zero when the token carries none.
	ExpiresAt time.Time
}

// Expired reports whether the token has a known expiry before now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SessionState is a snapshot of the session for display.
type SessionState struct {
	Status  SessionStatus
	Session *Session
}

// IsAuthenticated reports whether a user is logged in.
func (s SessionState) IsAuthenticated() bool {
	return s.Status == SessionAuthenticated && s.Session != nil
}

// User returns the logged-in user, or nil.
func (s SessionState) User() *User {
	if !s.IsAuthenticated() {
		return nil
	}
	u := s.Session.User
	return &u
}

// TokenInfo is the readable subset of bearer token claims.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
