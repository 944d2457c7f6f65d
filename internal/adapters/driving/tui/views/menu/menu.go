// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/messages"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/styles"
	"github.com/servilink/servilink-cli/internal/core/domain"
)

// Item represents a single menu option.
type Item struct {
	Label  string
	View   messages.ViewType
	Quit   bool // If true, selecting this item quits the app
	Logout bool // If true, selecting this item signs the user out
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	session  domain.SessionState
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view for a guest.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles: s,
		width:  80,
		height: 24,
	}
	v.SetSession(domain.SessionState{Status: domain.SessionAnonymous})
	return v
}

// SetSession rebuilds the menu for the given session.
func (v *View) SetSession(state domain.SessionState) {
	v.session = state

	items := []Item{{Label: "Search services", View: messages.ViewSearch}}
	if state.IsAuthenticated() {
		items = append(items,
			Item{Label: "My jobs", View: messages.ViewJobs},
			Item{Label: "Profile", View: messages.ViewProfile},
			Item{Label: "Log out", Logout: true},
		)
	} else {
		items = append(items, Item{Label: "Log in", View: messages.ViewLogin})
	}
	items = append(items,
		Item{Label: "Help", View: messages.ViewHelp},
		Item{Label: "Quit", Quit: true},
	)

	v.items = items
	if v.selected >= len(items) {
		v.selected = len(items) - 1
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			item := v.items[v.selected]
			switch {
			case item.Quit:
				return v, tea.Quit
			case item.Logout:
				return v, func() tea.Msg { return messages.LogoutRequested{} }
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: item.View}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("ServiLink"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render(v.subtitle()))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Subtitle
		}
		b.WriteString(cursor + style.Render(item.Label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

func (v *View) subtitle() string {
	u := v.session.User()
	if u == nil {
		return "Browsing as guest"
	}
	return fmt.Sprintf("Logged in as %s (%s)", u.Name, u.Role)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Items returns the current menu items.
func (v *View) Items() []Item {
	return v.items
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
