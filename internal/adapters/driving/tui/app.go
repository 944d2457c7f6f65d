package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/components/status"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/keymap"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/messages"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/styles"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/views/jobs"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/views/login"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/views/menu"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/views/profile"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/views/search"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/views/service"
	"github.com/servilink/servilink-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// statusbar is shared by the views that show one.
	statusbar *status.Bar

	menuView    *menu.View
	loginView   *login.View
	searchView  *search.View
	serviceView *service.View
	jobsView    *jobs.View
	profileView *profile.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// session is the last session state the app rendered.
	session domain.SessionState

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		statusbar:   bar,
		menuView:    menu.NewView(s),
		loginView:   login.NewView(s, km, ports.Auth),
		searchView:  search.NewView(s, km, bar, ports.Search, ports.pageSize()),
		serviceView: service.NewView(s, km, bar, ports.Session, ports.Catalog, ports.Jobs),
		jobsView:    jobs.NewView(s, km, bar, ports.Session, ports.Jobs),
		profileView: profile.NewView(s, ports.Session, ports.Profile),
		currentView: messages.ViewMenu,
	}
	a.applySession(ports.Session.Current())
	return a, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.loginView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	a.serviceView.WithContext(ctx)
	a.jobsView.WithContext(ctx)
	a.profileView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ServiLink"),
	)
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				return a, a.navigate(messages.ViewMenu)
			}
			return a, nil
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		return a, a.navigate(msg.View)

	case messages.ServiceSelected:
		back := a.currentView
		if back != messages.ViewJobs {
			back = messages.ViewSearch
		}
		a.currentView = messages.ViewService
		return a, a.serviceView.Open(msg.ServiceID, back)

	case messages.SessionChanged:
		return a, a.onSessionChanged(msg.State)

	case messages.LoginCompleted:
		var cmd tea.Cmd
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.err = nil
		state := a.ports.Session.Current()
		a.applySession(state)
		if u := state.User(); u != nil {
			a.statusbar.SetInfo("Welcome, " + u.Name)
		}
		a.currentView = messages.ViewMenu
		return a, cmd

	case messages.LogoutRequested:
		auth, ctx := a.ports.Auth, a.ctx
		return a, func() tea.Msg {
			return messages.LogoutCompleted{Err: auth.SignOut(ctx)}
		}

	case messages.LogoutCompleted:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusbar.SetError(domain.UserMessage(msg.Err))
		}
		return a, a.onSessionChanged(a.ports.Session.Current())

	case messages.SearchCompleted, messages.CategoriesLoaded:
		var cmd tea.Cmd
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ServiceLoaded, messages.HireCompleted, messages.JobActionCompleted:
		var cmd tea.Cmd
		a.serviceView, cmd = a.serviceView.Update(msg)
		return a, cmd

	case messages.JobsLoaded:
		var cmd tea.Cmd
		a.jobsView, cmd = a.jobsView.Update(msg)
		return a, cmd

	case messages.ProfileLoaded:
		var cmd tea.Cmd
		a.profileView, cmd = a.profileView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusbar.SetError(domain.UserMessage(msg.Err))
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages, such as cursor blinks, to the active view
	return a, a.forward(msg)
}

// forward sends msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewService:
		a.serviceView, cmd = a.serviceView.Update(msg)
	case messages.ViewJobs:
		a.jobsView, cmd = a.jobsView.Update(msg)
	case messages.ViewProfile:
		a.profileView, cmd = a.profileView.Update(msg)
	case messages.ViewHelp:
		// Help view is static
	}
	return cmd
}

// navigate switches to view, sending guests to the login form when the
// view needs an account.
func (a *App) navigate(view messages.ViewType) tea.Cmd {
	if view.RequiresLogin() && !a.session.IsAuthenticated() {
		view = messages.ViewLogin
	}

	prev := a.currentView
	a.currentView = view
	a.statusbar.Clear()

	switch view {
	case messages.ViewLogin:
		a.loginView.Reset()
		return a.loginView.Init()
	case messages.ViewSearch:
		a.statusbar.SetHints(a.keymap.FormHelp())
		if prev == messages.ViewMenu {
			a.searchView.Reset()
		} else if a.searchView.Listing().Results() != nil {
			a.statusbar.SetResultCount(len(a.searchView.Listing().Results()))
			a.statusbar.SetHints(a.keymap.ResultsHelp())
		}
		return a.searchView.Init()
	case messages.ViewJobs:
		return a.jobsView.Init()
	case messages.ViewProfile:
		return a.profileView.Init()
	case messages.ViewMenu, messages.ViewService, messages.ViewHelp:
		a.statusbar.SetHints(nil)
	}
	return nil
}

// onSessionChanged rerenders for a new session, leaving views that need
// an account when the user is gone.
func (a *App) onSessionChanged(state domain.SessionState) tea.Cmd {
	wasAuthenticated := a.session.IsAuthenticated()
	prevUser := a.session.User()
	a.applySession(state)

	if !state.IsAuthenticated() && a.currentView.RequiresLogin() {
		a.currentView = messages.ViewMenu
		a.statusbar.SetHints(nil)
	}
	if wasAuthenticated && !state.IsAuthenticated() {
		a.statusbar.SetInfo("You have been logged out.")
	}

	cur := state.User()
	if sameUser(prevUser, cur) {
		return nil
	}
	switch a.currentView {
	case messages.ViewService:
		return a.serviceView.Reload()
	case messages.ViewJobs:
		return a.jobsView.Reload()
	case messages.ViewProfile:
		return a.profileView.Init()
	}
	return nil
}

func sameUser(a, b *domain.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

// applySession updates the views that depend on who is logged in.
func (a *App) applySession(state domain.SessionState) {
	a.session = state
	a.menuView.SetSession(state)
	if u := state.User(); u != nil {
		a.statusbar.SetUser(fmt.Sprintf("%s (%s)", u.Name, u.Role))
	} else {
		a.statusbar.SetUser("")
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewLogin:
		return a.loginView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewService:
		return a.serviceView.View()
	case messages.ViewJobs:
		return a.jobsView.View()
	case messages.ViewProfile:
		return a.profileView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  j/k, ↑/↓    Move
  enter       Open / submit
  esc         Back
  ctrl+c      Quit

Search:
  tab         Next filter field
  enter       Search
  ←/→, [/]    Previous / next page
  s           Change sort order
  c           Cycle category
  /           Edit search

Service:
  H           Hire
  a           Accept job (vendor)
  c           Confirm completion
  x           Cancel job
  r           Leave a review
  ctrl+r      Refresh

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Session returns the session state the app last applied.
func (a *App) Session() domain.SessionState {
	return a.session
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.loginView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.serviceView.SetDimensions(width, height)
	a.jobsView.SetDimensions(width, height)
	a.profileView.SetDimensions(width, height)
}
