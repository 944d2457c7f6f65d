// Package search provides the service search view for the TUI.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/components/input"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/components/list"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/components/status"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/keymap"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/messages"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/styles"
	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
)

// View is the search form, the paged results list and the status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	query     *input.Field
	minPrice  *input.Field
	maxPrice  *input.Field
	minRating *input.Field
	form      *input.Form
	list      *list.ServiceList

	searchService driving.SearchService
	ctx           context.Context

	listing    *domain.Listing
	sort       domain.SortKey
	categories []domain.Skill
	category   int // index into categories, -1 for all
	gen        uint64
	searching  bool

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = form mode (typing), false = results mode (navigating)
}

// NewView creates a new search view. pageSize below one uses the default.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	bar *status.Bar,
	searchService driving.SearchService,
	pageSize int,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if bar == nil {
		bar = status.NewBar(s, km)
	}

	query := input.NewField(s, "Search", "plumbing, gardening, ...")
	minPrice := input.NewField(s, "Min price", "any")
	maxPrice := input.NewField(s, "Max price", "any")
	minRating := input.NewField(s, "Min rating", "1-5")

	return &View{
		styles:        s,
		keymap:        km,
		statusbar:     bar,
		query:         query,
		minPrice:      minPrice,
		maxPrice:      maxPrice,
		minRating:     minRating,
		form:          input.NewForm(query, minPrice, maxPrice, minRating),
		list:          list.NewServiceList(s),
		searchService: searchService,
		ctx:           context.Background(),
		listing:       domain.NewListing(pageSize),
		sort:          domain.SortRelevance,
		category:      -1,
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the category list once.
func (v *View) Init() tea.Cmd {
	var cmds []tea.Cmd
	if v.focusInput {
		cmds = append(cmds, v.form.FocusCurrent())
	}
	if v.categories == nil && v.searchService != nil {
		svc, ctx := v.searchService, v.ctx
		cmds = append(cmds, func() tea.Msg {
			skills, err := svc.Categories(ctx)
			return messages.CategoriesLoaded{Skills: skills, Err: err}
		})
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.CategoriesLoaded:
		if msg.Err == nil {
			v.categories = msg.Skills
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	if v.focusInput {
		return v, v.form.Update(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	if msg.Type == tea.KeyEsc {
		if !v.focusInput && v.listing.Results() != nil {
			return v, v.focusForm()
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		switch {
		case msg.Type == tea.KeyEnter:
			return v, v.submit()
		case keymap.Matches(key, v.keymap.NextField):
			return v, v.form.Next()
		case keymap.Matches(key, v.keymap.PrevField):
			return v, v.form.Prev()
		}
		return v, v.form.Update(msg)
	}

	switch {
	case keymap.Matches(key, v.keymap.Select):
		if svc := v.list.SelectedService(); svc != nil {
			id := svc.ID
			return v, func() tea.Msg { return messages.ServiceSelected{ServiceID: id} }
		}
	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(key, v.keymap.NextPage):
		if v.listing.Next() {
			v.list.SetServices(v.listing.Window())
		}
	case keymap.Matches(key, v.keymap.PrevPage):
		if v.listing.Prev() {
			v.list.SetServices(v.listing.Window())
		}
	case keymap.Matches(key, v.keymap.Sort):
		v.sort = v.sort.Next()
		return v, v.rerun()
	case keymap.Matches(key, v.keymap.Category):
		v.cycleCategory()
		return v, v.rerun()
	case keymap.Matches(key, v.keymap.NewSearch):
		return v, v.focusForm()
	}
	return v, nil
}

func (v *View) focusForm() tea.Cmd {
	v.focusInput = true
	v.statusbar.SetHints(v.keymap.FormHelp())
	return v.form.FocusCurrent()
}

func (v *View) cycleCategory() {
	if len(v.categories) == 0 {
		v.category = -1
		return
	}
	v.category++
	if v.category >= len(v.categories) {
		v.category = -1
	}
}

// Filter builds the search filter from the form, sort and category.
func (v *View) Filter() (domain.SearchFilter, error) {
	f := domain.SearchFilter{
		Query: strings.TrimSpace(v.query.Value()),
		Sort:  v.sort,
	}

	var err error
	if f.MinPrice, err = parseBound(v.minPrice.Value()); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parseBound(v.maxPrice.Value()); err != nil {
		return f, err
	}
	if f.MinRating, err = parseBound(v.minRating.Value()); err != nil {
		return f, err
	}
	if v.category >= 0 && v.category < len(v.categories) {
		f.CategoryIDs = []int64{v.categories[v.category].ID}
	}
	return f, nil
}

func parseBound(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, ErrBadNumber
	}
	return &n, nil
}

// submit runs the search from the form and moves focus to the results.
func (v *View) submit() tea.Cmd {
	cmd := v.rerun()
	if cmd == nil {
		return nil
	}
	v.focusInput = false
	v.form.Blur()
	return cmd
}

// rerun starts a search for the current filter. Responses to earlier
// searches are discarded when they arrive.
func (v *View) rerun() tea.Cmd {
	if v.searchService == nil {
		v.setError(ErrNoSearchService)
		return nil
	}
	filter, err := v.Filter()
	if err != nil {
		v.setError(err)
		return nil
	}

	v.err = nil
	v.listing.SetFilter(filter)
	v.gen++
	v.searching = true
	v.statusbar.SetState(status.StateLoading)

	gen, svc, ctx := v.gen, v.searchService, v.ctx
	return func() tea.Msg {
		results, err := svc.Search(ctx, filter)
		return messages.SearchCompleted{Gen: gen, Filter: filter, Results: results, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Gen != v.gen {
		return
	}
	v.searching = false

	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	results := msg.Results
	if results == nil {
		results = []domain.Service{}
	}
	v.listing.SetResults(results)
	v.list.SetServices(v.listing.Window())
	v.statusbar.SetResultCount(len(results))
	v.statusbar.SetHints(v.keymap.ResultsHelp())
}

func (v *View) setError(err error) {
	v.err = err
	v.searching = false
	v.statusbar.SetError(domain.UserMessage(err))
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Find a service"),
		"",
		v.form.View(),
		v.styles.Muted.Render(fmt.Sprintf("Sort: %s   Category: %s", v.sort.Description(), v.CategoryLabel())),
		"",
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+domain.UserMessage(v.err)), "")
	}

	if v.listing.Results() != nil {
		sections = append(sections, v.styles.Subtitle.Render(fmt.Sprintf(
			"Page %d of %d", v.listing.Page(), v.listing.TotalPages())), v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// CategoryLabel names the active category filter.
func (v *View) CategoryLabel() string {
	if v.category < 0 || v.category >= len(v.categories) {
		return "All"
	}
	return v.categories[v.category].Name
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.form.SetWidth(min(width, 70))
	v.list.SetDimensions(width, height-14) // header, form, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Listing returns the paged results.
func (v *View) Listing() *domain.Listing {
	return v.listing
}

// SelectedService returns the highlighted service.
func (v *View) SelectedService() *domain.Service {
	return v.list.SelectedService()
}

// Searching reports whether a search is in flight.
func (v *View) Searching() bool {
	return v.searching
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the form has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns the view to an empty form.
func (v *View) Reset() {
	v.gen++
	v.searching = false
	v.form.Reset()
	v.focusInput = true
	v.sort = domain.SortRelevance
	v.category = -1
	v.listing = domain.NewListing(v.listing.PageSize())
	v.list.SetServices(nil)
	v.err = nil
	v.statusbar.Clear()
	v.statusbar.SetHints(v.keymap.FormHelp())
}
