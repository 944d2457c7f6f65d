// Package login provides the sign-in form for the TUI.
package login

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/components/input"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/keymap"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/messages"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/styles"
	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
)

// View is the login form.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	auth   driving.AuthService
	ctx    context.Context

	email    *input.Field
	password *input.Field
	form     *input.Form

	submitting bool
	err        string
	width      int
	height     int
	ready      bool
}

// NewView creates a new login view.
func NewView(s *styles.Styles, km *keymap.KeyMap, auth driving.AuthService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	email := input.NewField(s, "Email", "you@example.com")
	password := input.NewPasswordField(s, "Password")

	return &View{
		styles:   s,
		keymap:   km,
		auth:     auth,
		ctx:      context.Background(),
		email:    email,
		password: password,
		form:     input.NewForm(email, password),
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.form.FocusCurrent()
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.LoginCompleted:
		v.submitting = false
		if msg.Err != nil {
			v.err = domain.UserMessage(msg.Err)
			v.password.Reset()
			return v, nil
		}
		v.Reset()
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, v.form.Update(msg)
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.submitting {
		return v, nil
	}

	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case keymap.Matches(msg.String(), v.keymap.NextField), msg.Type == tea.KeyDown:
		return v, v.form.Next()
	case keymap.Matches(msg.String(), v.keymap.PrevField), msg.Type == tea.KeyUp:
		return v, v.form.Prev()
	case msg.Type == tea.KeyEnter:
		if v.form.Focused() == 0 {
			return v, v.form.Next()
		}
		return v, v.submit()
	}

	return v, v.form.Update(msg)
}

func (v *View) submit() tea.Cmd {
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()
	if email == "" || password == "" {
		v.err = "Email and password are required"
		return nil
	}

	v.err = ""
	v.submitting = true
	auth, ctx := v.auth, v.ctx
	return func() tea.Msg {
		user, err := auth.SignIn(ctx, email, password)
		return messages.LoginCompleted{User: user, Err: err}
	}
}

// View renders the login form.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Log in to ServiLink"),
		"",
		v.form.View(),
		"",
	}

	switch {
	case v.submitting:
		sections = append(sections, v.styles.Muted.Render("Signing in..."))
	case v.err != "":
		sections = append(sections, v.styles.Error.Render(v.err))
	}

	sections = append(sections, "", v.styles.Help.Render("[tab] Next field  [enter] Log in  [esc] Back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.form.SetWidth(min(width, 70))
}

// Reset clears the form.
func (v *View) Reset() {
	v.form.Reset()
	v.err = ""
	v.submitting = false
}

// Err returns the message shown for the last failure.
func (v *View) Err() string {
	return v.err
}

// Submitting reports whether a sign-in is in flight.
func (v *View) Submitting() bool {
	return v.submitting
}
