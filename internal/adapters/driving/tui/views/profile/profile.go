// Package profile shows the signed-in user's profile and skills.
package profile

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/messages"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/styles"
	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
)

// View is a read-only profile page.
type View struct {
	styles  *styles.Styles
	session driving.SessionService
	profile driving.ProfileService
	ctx     context.Context

	user   *domain.User
	skills []domain.Skill
	err    error

	width int
	ready bool
}

// NewView creates a new profile view. profile may be nil, in which case
// the session's copy of the user is shown.
func NewView(s *styles.Styles, session driving.SessionService, profile driving.ProfileService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, session: session, profile: profile, ctx: context.Background(), width: 80}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init shows the session user and fetches the fresh profile.
func (v *View) Init() tea.Cmd {
	v.user = v.session.Current().User()
	v.skills = nil
	v.err = nil
	if v.user == nil || v.profile == nil {
		return nil
	}

	id, profile, ctx := v.user.ID, v.profile, v.ctx
	return func() tea.Msg {
		u, err := profile.Get(ctx, id)
		if err != nil {
			return messages.ProfileLoaded{Err: err}
		}
		skills, err := profile.Skills(ctx, id)
		return messages.ProfileLoaded{User: u, Skills: skills, Err: err}
	}
}

// Update handles messages for the profile view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case messages.ProfileLoaded:
		if msg.User != nil {
			v.user = msg.User
			v.skills = msg.Skills
		}
		v.err = msg.Err
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		case "ctrl+r":
			return v, v.Init()
		}
	}
	return v, nil
}

// View renders the profile.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.user == nil {
		return v.styles.Muted.Render("Not logged in")
	}

	u := v.user
	rows := []string{
		v.styles.Title.Render(u.Name),
		v.styles.Subtitle.Render(u.Role.String()),
		"",
		v.field("Email", u.Email),
		v.field("Phone", u.Phone),
		v.field("Location", u.Location),
		v.field("Bio", u.Bio),
	}
	if !u.CreatedAt.IsZero() {
		rows = append(rows, v.field("Member since", u.CreatedAt.Format("2006-01-02")))
	}

	if u.IsVendor() {
		names := make([]string, 0, len(v.skills))
		for _, s := range v.skills {
			names = append(names, s.Name)
		}
		skills := strings.Join(names, ", ")
		if skills == "" {
			skills = "none yet, add some with `servilink profile skills add`"
		}
		rows = append(rows, v.field("Skills", skills))
	}

	if v.err != nil {
		rows = append(rows, "", v.styles.Error.Render(domain.UserMessage(v.err)))
	}
	rows = append(rows, "", v.styles.Help.Render("[ctrl+r] Refresh  [esc] Back"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *View) field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return v.styles.Muted.Width(14).Render(label+":") + v.styles.Normal.Render(value)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, _ int) {
	v.width = width
	v.ready = true
}

// User returns the displayed user.
func (v *View) User() *domain.User {
	return v.user
}

// Skills returns the displayed skills.
func (v *View) Skills() []domain.Skill {
	return v.skills
}
