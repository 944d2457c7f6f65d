package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Session Errors.

	// ErrAuthRequired indicates the operation needs a logged-in user.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates the stored token is past its expiry.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrSessionCorrupt indicates the cached profile could not be decoded.
	ErrSessionCorrupt = errors.New("session data corrupt")

	// ErrForbidden indicates the user is not allowed to perform the action.
	ErrForbidden = errors.New("forbidden")

	// Job Lifecycle Errors.

	// ErrInvalidTransition indicates the job's status does not permit the action.
	ErrInvalidTransition = errors.New("invalid job transition")

	// ErrActiveJobExists indicates the contractor already has a live job for the service.
	ErrActiveJobExists = errors.New("an active job already exists for this service")

	// ErrOwnService indicates a vendor tried to hire their own service.
	ErrOwnService = errors.New("cannot hire your own service")

	// Backend Errors.

	// ErrRejected indicates the backend refused the request (4xx with a reason).
	ErrRejected = errors.New("request rejected")

	// ErrUnavailable indicates the backend could not be reached or failed.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// UserMessage returns short text suitable for a status bar or CLI output.
// Errors carrying a backend reason keep it; sentinels get a fixed phrase.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var reasoned interface{ Reason() string }
	if errors.As(err, &reasoned) && reasoned.Reason() != "" {
		return reasoned.Reason()
	}

	switch {
	case errors.Is(err, ErrActiveJobExists):
		return "You already have an active job for this service."
	case errors.Is(err, ErrOwnService):
		return "You cannot hire your own service."
	case errors.Is(err, ErrAuthRequired), errors.Is(err, ErrAuthExpired):
		return "Please log in first."
	case errors.Is(err, ErrForbidden):
		return "You are not allowed to do that."
	case errors.Is(err, ErrNotFound):
		return "Not found."
	case errors.Is(err, ErrInvalidTransition):
		return "That action is not available for this job."
	case errors.Is(err, ErrRateLimited):
		return "Too many requests, try again shortly."
	case errors.Is(err, ErrUnavailable):
		return "The ServiLink server is unavailable."
	default:
		return err.Error()
	}
}
