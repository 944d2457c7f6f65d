// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
// Responses to asynchronous requests carry the generation of the request that
// produced them, so views can drop responses that arrive after a newer request.
package messages

import (
	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/services"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewLogin is the login form.
	ViewLogin
	// ViewSearch is the service search and results view.
	ViewSearch
	// ViewService shows one service, its reviews and the viewer's job.
	ViewService
	// ViewJobs lists the viewer's jobs.
	ViewJobs
	// ViewProfile shows the viewer's profile.
	ViewProfile
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewLogin:
		return "login"
	case ViewSearch:
		return "search"
	case ViewService:
		return "service"
	case ViewJobs:
		return "jobs"
	case ViewProfile:
		return "profile"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// RequiresLogin reports whether the view is only reachable when logged in.
func (v ViewType) RequiresLogin() bool {
	return v == ViewJobs || v == ViewProfile
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SessionChanged is sent after the stored session was reloaded, for
// example when another process logged in or out.
type SessionChanged struct {
	State domain.SessionState
}

// LoginCompleted carries the result of a sign-in.
type LoginCompleted struct {
	User *domain.User
	Err  error
}

// LogoutRequested asks the application to sign the user out.
type LogoutRequested struct{}

// LogoutCompleted carries the result of a sign-out.
type LogoutCompleted struct {
	Err error
}

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Gen     uint64
	Filter  domain.SearchFilter
	Results []domain.Service
	Err     error
}

// CategoriesLoaded carries the skill catalogue used as search categories.
type CategoriesLoaded struct {
	Skills []domain.Skill
	Err    error
}

// ServiceSelected opens the detail view of a service.
type ServiceSelected struct {
	ServiceID int64
}

// ServiceLoaded carries a service with its reviews and the viewer's latest job.
type ServiceLoaded struct {
	Gen     uint64
	Service *domain.Service
	Reviews []domain.Review
	Err     error

	// JobChecked is true when the viewer's job lookup succeeded, in which
	// case Job is authoritative even when nil. JobErr reports a failed lookup.
	JobChecked bool
	Job        *domain.Job
	JobErr     error
}

// HireCompleted carries the job created by a hire request.
type HireCompleted struct {
	Gen uint64
	Job *domain.Job
	Err error
}

// JobActionCompleted carries the outcome of a lifecycle action.
type JobActionCompleted struct {
	Tracker *services.JobTracker
	Gen     uint64
	Outcome services.Outcome
}

// JobsLoaded carries the viewer's jobs.
type JobsLoaded struct {
	Gen  uint64
	Jobs []domain.Job
	Err  error
}

// ProfileLoaded carries the viewer's profile and declared skills.
type ProfileLoaded struct {
	User   *domain.User
	Skills []domain.Skill
	Err    error
}
