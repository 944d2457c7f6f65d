// Package jobs provides the list of the viewer's jobs.
package jobs

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/components/status"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/keymap"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/messages"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/styles"
	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
)

// View lists jobs received (vendors) or hired (contractors).
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	session driving.SessionService
	jobs    driving.JobService
	ctx     context.Context

	viewer   *domain.User
	items    []domain.Job
	selected int
	gen      uint64
	loading  bool
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new jobs view.
func NewView(s *styles.Styles, km *keymap.KeyMap, bar *status.Bar, session driving.SessionService, jobs driving.JobService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if bar == nil {
		bar = status.NewBar(s, km)
	}
	return &View{
		styles:    s,
		keymap:    km,
		statusbar: bar,
		session:   session,
		jobs:      jobs,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the jobs.
func (v *View) Init() tea.Cmd {
	v.statusbar.SetHints(v.keymap.ListHelp())
	return v.Reload()
}

// Reload refetches the jobs for the current viewer.
func (v *View) Reload() tea.Cmd {
	v.viewer = v.session.Current().User()
	v.gen++
	if v.viewer == nil {
		v.items = nil
		v.loading = false
		return nil
	}
	v.loading = true
	v.statusbar.SetState(status.StateLoading)

	gen, viewer, jobs, ctx := v.gen, *v.viewer, v.jobs, v.ctx
	return func() tea.Msg {
		list, err := jobs.ListMine(ctx, viewer)
		return messages.JobsLoaded{Gen: gen, Jobs: list, Err: err}
	}
}

// Update handles messages for the jobs view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.JobsLoaded:
		if msg.Gen != v.gen {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetError(domain.UserMessage(msg.Err))
			return v, nil
		}
		v.err = nil
		v.items = newestFirst(msg.Jobs)
		v.selected = min(v.selected, max(len(v.items)-1, 0))
		v.statusbar.Clear()

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case msg.Type == tea.KeyEsc:
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		case keymap.Matches(key, v.keymap.Refresh):
			return v, v.Reload()
		case keymap.Matches(key, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
		case keymap.Matches(key, v.keymap.Down):
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case keymap.Matches(key, v.keymap.Select):
			if job := v.SelectedJob(); job != nil {
				id := serviceOf(job)
				if id != 0 {
					return v, func() tea.Msg { return messages.ServiceSelected{ServiceID: id} }
				}
			}
		}
	}
	return v, nil
}

func newestFirst(jobs []domain.Job) []domain.Job {
	out := append([]domain.Job(nil), jobs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func serviceOf(job *domain.Job) int64 {
	if job.ServiceID == 0 && job.Service != nil {
		return job.Service.ID
	}
	return job.ServiceID
}

// View renders the jobs list.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	title := "My jobs"
	if v.viewer != nil && v.viewer.IsVendor() {
		title = "Jobs received"
	}
	sections := []string{v.styles.Title.Render(title), ""}

	switch {
	case v.loading && v.items == nil:
		sections = append(sections, v.styles.Muted.Render("Loading jobs..."))
	case len(v.items) == 0 && v.err == nil:
		sections = append(sections, v.styles.Muted.Render("No jobs yet"))
	default:
		for i := range v.items {
			sections = append(sections, v.renderJob(i))
		}
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderJob(i int) string {
	job := v.items[i]
	var viewerID int64
	if v.viewer != nil {
		viewerID = v.viewer.ID
	}
	jv := domain.NewJobView(job, viewerID)

	cursor := "  "
	titleStyle := v.styles.Normal
	if i == v.selected {
		cursor = "> "
		titleStyle = v.styles.Selected
	}

	title := job.ServiceTitle()
	if title == "" {
		title = fmt.Sprintf("Service #%d", serviceOf(&job))
	}

	line := cursor + titleStyle.Render(fmt.Sprintf("#%d %s", job.ID, title)) + " " +
		v.styles.JobStatus(jv.Status).Render(jv.Label)

	var meta []string
	if other := job.Counterpart(viewerID); other != nil && other.Name != "" {
		meta = append(meta, "with "+other.Name)
	}
	meta = append(meta, fmt.Sprintf("$%.2f", job.TotalAmount))
	if !job.StartDate.IsZero() {
		meta = append(meta, "from "+job.StartDate.Format("2006-01-02"))
	}
	if jv.Hint != "" {
		meta = append(meta, jv.Hint)
	}
	return line + "\n" + v.styles.Muted.Render("    "+strings.Join(meta, " · "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.statusbar.SetWidth(width)
}

// Jobs returns the loaded jobs, newest first.
func (v *View) Jobs() []domain.Job {
	return v.items
}

// SelectedJob returns the highlighted job, or nil.
func (v *View) SelectedJob() *domain.Job {
	if v.selected < 0 || v.selected >= len(v.items) {
		return nil
	}
	return &v.items[v.selected]
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
