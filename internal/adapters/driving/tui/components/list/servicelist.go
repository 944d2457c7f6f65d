// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/styles"
	"github.com/servilink/servilink-cli/internal/core/domain"
)

// ServiceList displays one page of services in a navigable list.
type ServiceList struct {
	services []domain.Service
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewServiceList creates a new service list component.
func NewServiceList(s *styles.Styles) *ServiceList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ServiceList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (r *ServiceList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ServiceList) Update(msg tea.Msg) (*ServiceList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the list.
func (r *ServiceList) View() string {
	if len(r.services) == 0 {
		return r.styles.Muted.Render("No services found")
	}

	// Each service takes two lines
	visible := max((r.height-2)/2, 1)

	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.services))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderService(i, &r.services[i]))
	}
	return strings.Join(lines, "\n")
}

func (r *ServiceList) renderService(index int, svc *domain.Service) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := svc.Title
	if title == "" {
		title = "(Untitled)"
	}
	maxTitleLen := max(r.width-24, 10)
	title = truncate(title, maxTitleLen)

	price := fmt.Sprintf("$%.2f", svc.Price)

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %10s", indicator, maxTitleLen, title, price))
	} else {
		titleLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
			r.styles.Subtitle.Render(fmt.Sprintf("%10s", price))
	}

	meta := []string{styles.Stars(svc.AvgRating)}
	if c := svc.CategoryName(); c != "" {
		meta = append(meta, c)
	}
	if v := svc.VendorName(); v != "" {
		meta = append(meta, "by "+v)
	}
	metaLine := r.styles.Muted.Render("    " + truncate(strings.Join(meta, " · "), max(r.width-6, 20)))

	return titleLine + "\n" + metaLine
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// SetServices replaces the list contents and resets the selection.
func (r *ServiceList) SetServices(services []domain.Service) {
	r.services = services
	r.selected = 0
}

// Services returns the current services.
func (r *ServiceList) Services() []domain.Service {
	return r.services
}

// Selected returns the index of the selected service.
func (r *ServiceList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ServiceList) SetSelected(index int) {
	if index >= 0 && index < len(r.services) {
		r.selected = index
	}
}

// SelectedService returns the currently selected service, or nil if none.
func (r *ServiceList) SelectedService() *domain.Service {
	if r.selected < 0 || r.selected >= len(r.services) {
		return nil
	}
	return &r.services[r.selected]
}

// MoveUp moves selection up.
func (r *ServiceList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ServiceList) MoveDown() {
	if r.selected < len(r.services)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ServiceList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of services shown.
func (r *ServiceList) Count() int {
	return len(r.services)
}

// IsEmpty returns whether the list is empty.
func (r *ServiceList) IsEmpty() bool {
	return len(r.services) == 0
}
