// Package service provides the service detail view: the service, its
// reviews and the viewer's latest job with its lifecycle actions.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/components/input"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/components/status"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/keymap"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/messages"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/styles"
	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
	"github.com/servilink/servilink-cli/internal/core/services"
)

var (
	errBadDate   = errors.New("dates must look like YYYY-MM-DD")
	errBadRating = errors.New("rating must be a whole number from 1 to 5")
)

type mode int

const (
	modeDetail mode = iota
	modeHire
	modeReview
)

// actionKeys lists the key shown next to each lifecycle action.
var actionKeys = map[domain.JobAction]string{
	domain.ActionAccept:   "a",
	domain.ActionComplete: "c",
	domain.ActionCancel:   "x",
	domain.ActionReview:   "r",
}

// View shows a single service.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	session driving.SessionService
	catalog driving.CatalogService
	jobs    driving.JobService
	ctx     context.Context
	now     func() time.Time

	serviceID int64
	back      messages.ViewType
	viewer    *domain.User
	service   *domain.Service
	reviews   []domain.Review
	tracker   *services.JobTracker

	loadGen uint64
	hireGen uint64
	loading bool
	busy    bool
	err     error

	mode       mode
	hireForm   *input.Form
	startDate  *input.Field
	endDate    *input.Field
	reviewForm *input.Form
	rating     *input.Field
	comment    *input.Field

	width  int
	height int
	ready  bool
}

// NewView creates a new service detail view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	bar *status.Bar,
	session driving.SessionService,
	catalog driving.CatalogService,
	jobs driving.JobService,
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

	startDate := input.NewField(s, "Start date", "YYYY-MM-DD")
	endDate := input.NewField(s, "End date", "optional")
	rating := input.NewField(s, "Rating", "1-5")
	comment := input.NewField(s, "Comment", "optional")

	return &View{
		styles:     s,
		keymap:     km,
		statusbar:  bar,
		session:    session,
		catalog:    catalog,
		jobs:       jobs,
		ctx:        context.Background(),
		now:        time.Now,
		back:       messages.ViewSearch,
		startDate:  startDate,
		endDate:    endDate,
		hireForm:   input.NewForm(startDate, endDate),
		rating:     rating,
		comment:    comment,
		reviewForm: input.NewForm(rating, comment),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithClock replaces the clock used for the default hire date.
func (v *View) WithClock(now func() time.Time) *View {
	v.now = now
	return v
}

// Open shows the service with the given id. esc returns to back.
func (v *View) Open(id int64, back messages.ViewType) tea.Cmd {
	v.serviceID = id
	v.back = back
	v.service = nil
	v.reviews = nil
	v.tracker = nil
	v.busy = false
	v.err = nil
	v.mode = modeDetail
	v.statusbar.Clear()
	v.statusbar.SetHints(v.keymap.ServiceHelp())
	return v.Reload()
}

// Reload refetches the service, its reviews and the viewer's latest job.
// Responses to earlier loads are discarded.
func (v *View) Reload() tea.Cmd {
	if v.serviceID == 0 {
		return nil
	}
	v.loadGen++
	v.loading = true
	v.viewer = v.session.Current().User()
	v.statusbar.SetState(status.StateLoading)

	gen, id, viewer := v.loadGen, v.serviceID, v.viewer
	catalog, jobs, ctx := v.catalog, v.jobs, v.ctx
	return func() tea.Msg {
		svc, err := catalog.Get(ctx, id)
		if err != nil {
			return messages.ServiceLoaded{Gen: gen, Err: err}
		}
		msg := messages.ServiceLoaded{Gen: gen, Service: svc}
		msg.Reviews, msg.Err = catalog.Reviews(ctx, id)
		if viewer == nil {
			msg.JobChecked = true
			return msg
		}
		msg.Job, msg.JobErr = jobs.LatestForService(ctx, *viewer, *svc)
		msg.JobChecked = msg.JobErr == nil
		return msg
	}
}

// Update handles messages for the service view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ServiceLoaded:
		v.handleLoaded(msg)
		return v, nil

	case messages.HireCompleted:
		v.handleHired(msg)
		return v, nil

	case messages.JobActionCompleted:
		return v, v.handleAction(msg)

	case tea.KeyMsg:
		switch v.mode {
		case modeHire:
			return v, v.updateForm(msg, v.hireForm, v.submitHire)
		case modeReview:
			return v, v.updateForm(msg, v.reviewForm, v.submitReview)
		}
		return v, v.handleKey(msg)
	}

	switch v.mode {
	case modeHire:
		return v, v.hireForm.Update(msg)
	case modeReview:
		return v, v.reviewForm.Update(msg)
	}
	return v, nil
}

func (v *View) handleLoaded(msg messages.ServiceLoaded) {
	if msg.Gen != v.loadGen {
		return
	}
	v.loading = false

	if msg.Service != nil {
		v.service = msg.Service
		if msg.Err == nil {
			v.reviews = msg.Reviews
		}
	}

	// A failed job lookup keeps the job already on screen.
	if msg.Service != nil && msg.JobChecked {
		switch {
		case msg.Job == nil || v.viewer == nil:
			v.tracker = nil
		case v.tracker != nil && v.tracker.View().Job.ID == msg.Job.ID:
			v.tracker.Reset(*msg.Job)
			v.busy = false
		default:
			v.tracker = services.NewJobTracker(v.jobs, *v.viewer, *msg.Job)
			v.busy = false
		}
	}

	if err := errors.Join(msg.Err, msg.JobErr); err != nil {
		v.err = err
		v.statusbar.SetError(domain.UserMessage(err))
		return
	}
	v.err = nil
	if v.statusbar.State() == status.StateLoading {
		v.statusbar.Clear()
	}
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch {
	case msg.Type == tea.KeyEsc:
		back := v.back
		return func() tea.Msg { return messages.ViewChanged{View: back} }
	case keymap.Matches(key, v.keymap.Refresh):
		return v.Reload()
	}

	if v.service == nil || v.busy {
		return nil
	}

	switch {
	case keymap.Matches(key, v.keymap.Hire):
		if reason := v.HireBlocked(); reason != "" {
			v.statusbar.SetError(reason)
			return nil
		}
		v.mode = modeHire
		cmd := v.hireForm.Reset()
		v.startDate.SetValue(v.now().Format(time.DateOnly))
		v.statusbar.SetHints(v.keymap.FormHelp())
		return cmd
	case keymap.Matches(key, v.keymap.Accept):
		return v.fire(domain.ActionAccept, services.ReviewInput{})
	case keymap.Matches(key, v.keymap.Complete):
		return v.fire(domain.ActionComplete, services.ReviewInput{})
	case keymap.Matches(key, v.keymap.CancelJob):
		return v.fire(domain.ActionCancel, services.ReviewInput{})
	case keymap.Matches(key, v.keymap.Review):
		if !v.Allowed(domain.ActionReview) {
			return nil
		}
		v.mode = modeReview
		v.statusbar.SetHints(v.keymap.FormHelp())
		return v.reviewForm.Reset()
	}
	return nil
}

func (v *View) updateForm(msg tea.KeyMsg, form *input.Form, submit func() tea.Cmd) tea.Cmd {
	key := msg.String()
	switch {
	case msg.Type == tea.KeyEsc:
		v.closeForm()
		return nil
	case keymap.Matches(key, v.keymap.NextField):
		return form.Next()
	case keymap.Matches(key, v.keymap.PrevField):
		return form.Prev()
	case msg.Type == tea.KeyEnter:
		if v.busy {
			return nil
		}
		if form.Focused() < len(form.Fields())-1 {
			return form.Next()
		}
		return submit()
	}
	return form.Update(msg)
}

func (v *View) closeForm() {
	v.mode = modeDetail
	v.hireForm.Blur()
	v.reviewForm.Blur()
	v.statusbar.SetHints(v.keymap.ServiceHelp())
}

// HireBlocked returns why the viewer cannot hire the service, or "".
func (v *View) HireBlocked() string {
	switch {
	case v.viewer == nil:
		return "Log in to hire this service."
	case v.service == nil:
		return "Service not loaded."
	case v.service.OwnedBy(v.viewer.ID):
		return domain.UserMessage(domain.ErrOwnService)
	case v.tracker != nil && v.tracker.View().Job.IsActive():
		return domain.UserMessage(domain.ErrActiveJobExists)
	}
	return ""
}

func (v *View) submitHire() tea.Cmd {
	start, err := parseDate(v.startDate.Value())
	if err != nil || start.IsZero() {
		v.statusbar.SetError(errBadDate.Error())
		return nil
	}
	end, err := parseDate(v.endDate.Value())
	if err != nil {
		v.statusbar.SetError(errBadDate.Error())
		return nil
	}

	var known []domain.Job
	if v.tracker != nil {
		known = append(known, v.tracker.View().Job)
	}

	v.hireGen++
	v.busy = true
	v.statusbar.SetState(status.StateLoading)

	gen, jobs, ctx := v.hireGen, v.jobs, v.ctx
	viewer, svc := *v.viewer, *v.service
	return func() tea.Msg {
		job, err := jobs.Hire(ctx, viewer, svc, start, end, known)
		return messages.HireCompleted{Gen: gen, Job: job, Err: err}
	}
}

func (v *View) handleHired(msg messages.HireCompleted) {
	if msg.Gen != v.hireGen {
		return
	}
	v.busy = false
	if msg.Err != nil {
		v.statusbar.SetError(domain.UserMessage(msg.Err))
		return
	}
	v.closeForm()
	if msg.Job != nil && v.viewer != nil {
		v.tracker = services.NewJobTracker(v.jobs, *v.viewer, *msg.Job)
	}
	v.statusbar.SetInfo("Hire request sent. " + domain.HintAwaitingVendor + ".")
}

func (v *View) submitReview() tea.Cmd {
	rating, err := strconv.Atoi(strings.TrimSpace(v.rating.Value()))
	if err != nil || domain.ValidateRating(rating) != nil {
		v.statusbar.SetError(errBadRating.Error())
		return nil
	}
	return v.fire(domain.ActionReview, services.ReviewInput{
		Rating:  rating,
		Comment: strings.TrimSpace(v.comment.Value()),
	})
}

// fire starts a lifecycle action if the job view offers it.
func (v *View) fire(action domain.JobAction, review services.ReviewInput) tea.Cmd {
	if !v.Allowed(action) {
		return nil
	}
	tracker, ctx := v.tracker, v.ctx
	gen := tracker.Begin()
	v.busy = true
	v.statusbar.SetState(status.StateLoading)
	return func() tea.Msg {
		return messages.JobActionCompleted{
			Tracker: tracker,
			Gen:     gen,
			Outcome: tracker.Request(ctx, action, review),
		}
	}
}

func (v *View) handleAction(msg messages.JobActionCompleted) tea.Cmd {
	if v.tracker == nil || msg.Tracker != v.tracker {
		return nil
	}
	out := v.tracker.Apply(msg.Gen, msg.Outcome)
	if out.Stale {
		return nil
	}
	v.busy = false
	if out.Err != nil {
		v.statusbar.SetError(out.Message)
		return nil
	}
	var cmd tea.Cmd
	if out.Action == domain.ActionReview {
		v.closeForm()
		cmd = v.Reload()
	}
	v.statusbar.SetInfo(out.Message)
	return cmd
}

// Allowed reports whether the viewer's job currently offers action.
func (v *View) Allowed(action domain.JobAction) bool {
	return v.tracker != nil && v.tracker.View().Allowed(action)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}

// View renders the service view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.service == nil {
		body := v.styles.Muted.Render("Loading service...")
		if !v.loading && v.err != nil {
			body = v.styles.Error.Render(domain.UserMessage(v.err))
		}
		return lipgloss.JoinVertical(lipgloss.Left, body, "", v.statusbar.View())
	}

	sections := []string{v.renderService(), "", v.renderJob(), ""}
	switch v.mode {
	case modeHire:
		sections = append(sections, v.styles.Subtitle.Render("Hire this service"), v.hireForm.View(), "")
	case modeReview:
		sections = append(sections, v.styles.Subtitle.Render("Leave a review"), v.reviewForm.View(), "")
	default:
		sections = append(sections, v.renderReviews(), "")
	}
	sections = append(sections, v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderService() string {
	s := v.service
	lines := []string{
		v.styles.Title.Render(s.Title),
		v.styles.Subtitle.Render(fmt.Sprintf("$%.2f", s.Price)) + "  " +
			v.styles.Warning.Render(styles.Stars(s.AvgRating)) +
			v.styles.Muted.Render(fmt.Sprintf(" %.1f", s.AvgRating)),
	}

	var meta []string
	if c := s.CategoryName(); c != "" {
		meta = append(meta, c)
	}
	if name := s.VendorName(); name != "" {
		meta = append(meta, "by "+name)
	}
	if !s.IsActive {
		meta = append(meta, "inactive")
	}
	if len(meta) > 0 {
		lines = append(lines, v.styles.Muted.Render(strings.Join(meta, " · ")))
	}
	if s.Description != "" {
		lines = append(lines, "", v.styles.Normal.Width(max(v.width-4, 20)).Render(s.Description))
	}
	if s.ImageURL != "" {
		lines = append(lines, v.styles.Muted.Render(s.ImageURL))
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderJob() string {
	if v.tracker == nil {
		if reason := v.HireBlocked(); reason != "" {
			return v.styles.Muted.Render(reason)
		}
		return v.styles.Normal.Render("[H] Hire this service")
	}

	view := v.tracker.View()
	job := view.Job
	lines := []string{
		v.styles.Subtitle.Render(fmt.Sprintf("Job #%d", job.ID)) + " " +
			v.styles.JobStatus(view.Status).Render(view.Label),
		v.styles.Muted.Render(fmt.Sprintf("%s to %s · $%.2f",
			formatDate(job.StartDate), formatDate(job.EndDate), job.TotalAmount)),
	}
	if view.Hint != "" {
		lines = append(lines, v.styles.Warning.Render(view.Hint))
	}
	for _, st := range view.Actions {
		text := fmt.Sprintf("[%s] %s", actionKeys[st.Action], st.Action.Label())
		if st.Enabled && !v.busy {
			lines = append(lines, v.styles.Normal.Render(text))
		} else {
			lines = append(lines, v.styles.Muted.Render(st.Text()))
		}
	}
	if !view.Job.IsActive() && v.HireBlocked() == "" {
		lines = append(lines, v.styles.Normal.Render("[H] Hire again"))
	}
	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

func (v *View) renderReviews() string {
	if len(v.reviews) == 0 {
		return v.styles.Muted.Render("No reviews yet")
	}
	lines := []string{v.styles.Subtitle.Render(fmt.Sprintf("Reviews (%d)", len(v.reviews)))}
	for _, r := range v.reviews {
		line := v.styles.Warning.Render(styles.Stars(float64(r.Rating)))
		if !r.CreatedAt.IsZero() {
			line += v.styles.Muted.Render("  " + formatDate(r.CreatedAt))
		}
		lines = append(lines, line)
		if r.Comment != "" {
			lines = append(lines, v.styles.Normal.Render("  "+r.Comment))
		}
	}
	return strings.Join(lines, "\n")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.hireForm.SetWidth(min(width, 70))
	v.reviewForm.SetWidth(min(width, 70))
	v.statusbar.SetWidth(width)
}

// Service returns the loaded service.
func (v *View) Service() *domain.Service {
	return v.service
}

// Reviews returns the loaded reviews.
func (v *View) Reviews() []domain.Review {
	return v.reviews
}

// JobView returns the viewer's job view, if there is a job.
func (v *View) JobView() (domain.JobView, bool) {
	if v.tracker == nil {
		return domain.JobView{}, false
	}
	return v.tracker.View(), true
}

// Busy reports whether a hire or action request is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
