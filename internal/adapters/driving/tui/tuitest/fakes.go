// Package tuitest provides configurable fakes of the driving ports for
// TUI tests. Unset funcs return zero values or ErrNotImplemented.
package tuitest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/servilink/servilink-cli/internal/adapters/driven/storage/memory"
	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
	"github.com/servilink/servilink-cli/internal/core/services"
)

var (
	_ driving.AuthService    = (*Auth)(nil)
	_ driving.SearchService  = (*Search)(nil)
	_ driving.CatalogService = (*Catalog)(nil)
	_ driving.JobService     = (*Jobs)(nil)
	_ driving.ProfileService = (*Profile)(nil)
)

// Session returns a session service backed by an in-memory store. A nil
// user yields an anonymous session.
func Session(t *testing.T, user *domain.User) *services.SessionService {
	t.Helper()
	s := services.NewSessionService(memory.NewSessionStore(), nil)
	if err := s.Rehydrate(context.Background()); err != nil {
		t.Fatalf("rehydrate: %v", err)
	}
	if user != nil {
		if err := s.Login(context.Background(), "tok", *user); err != nil {
			t.Fatalf("login: %v", err)
		}
	}
	return s
}

// Vendor returns a vendor user.
func Vendor(id int64) domain.User {
	return domain.User{ID: id, Name: "Vera", Email: "vera@example.com", RawRole: "vendedor", Role: domain.RoleVendor}
}

// Contractor returns a contractor user.
func Contractor(id int64) domain.User {
	return domain.User{ID: id, Name: "Carlos", Email: "carlos@example.com", RawRole: "contratador", Role: domain.RoleContractor}
}

// Auth is a fake driving.AuthService. A successful SignInFn also logs
// into Session when it is set.
type Auth struct {
	Session *services.SessionService

	SignInFn func(email, password string) (*domain.User, error)
	SignOuts int
}

func (a *Auth) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	if a.SignInFn == nil {
		return nil, domain.ErrNotImplemented
	}
	u, err := a.SignInFn(email, password)
	if err == nil && u != nil && a.Session != nil {
		if lerr := a.Session.Login(ctx, "tok", *u); lerr != nil {
			return nil, lerr
		}
	}
	return u, err
}

func (a *Auth) Register(context.Context, domain.Registration) (*domain.User, error) {
	return nil, domain.ErrNotImplemented
}

func (a *Auth) SignOut(ctx context.Context) error {
	a.SignOuts++
	if a.Session != nil {
		return a.Session.Logout(ctx)
	}
	return nil
}

// Search is a fake driving.SearchService that records filters.
type Search struct {
	mu      sync.Mutex
	Filters []domain.SearchFilter

	SearchFn func(f domain.SearchFilter) ([]domain.Service, error)
	Skills   []domain.Skill
}

func (s *Search) Search(_ context.Context, f domain.SearchFilter) ([]domain.Service, error) {
	s.mu.Lock()
	s.Filters = append(s.Filters, f)
	s.mu.Unlock()
	if s.SearchFn == nil {
		return nil, nil
	}
	return s.SearchFn(f)
}

func (s *Search) Categories(context.Context) ([]domain.Skill, error) {
	return s.Skills, nil
}

// LastFilter returns the most recent filter searched for.
func (s *Search) LastFilter() domain.SearchFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Filters) == 0 {
		return domain.SearchFilter{}
	}
	return s.Filters[len(s.Filters)-1]
}

// Catalog is a fake driving.CatalogService over a fixed set of services.
type Catalog struct {
	Services       map[int64]domain.Service
	ServiceReviews map[int64][]domain.Review
	GetErr         error
	ReviewsErr     error
}

func (c *Catalog) Get(_ context.Context, id int64) (*domain.Service, error) {
	if c.GetErr != nil {
		return nil, c.GetErr
	}
	s, ok := c.Services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (c *Catalog) ListByVendor(_ context.Context, vendorID int64) ([]domain.Service, error) {
	var out []domain.Service
	for _, s := range c.Services {
		if s.OwnedBy(vendorID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *Catalog) Create(context.Context, domain.ServiceDraft) (*domain.Service, error) {
	return nil, domain.ErrNotImplemented
}

func (c *Catalog) Update(context.Context, int64, domain.ServiceDraft) (*domain.Service, error) {
	return nil, domain.ErrNotImplemented
}

func (c *Catalog) Delete(context.Context, int64) error {
	return domain.ErrNotImplemented
}

func (c *Catalog) Reviews(_ context.Context, serviceID int64) ([]domain.Review, error) {
	if c.ReviewsErr != nil {
		return nil, c.ReviewsErr
	}
	return c.ServiceReviews[serviceID], nil
}

// Jobs is a fake driving.JobService. Actions apply the transition to the
// given job unless the matching Fn is set.
type Jobs struct {
	mu    sync.Mutex
	Calls []string

	Mine       []domain.Job
	ListErr    error
	LatestErr  error
	HireFn     func(service domain.Service, start, end time.Time) (*domain.Job, error)
	ActionErr  error
	ReviewFn   func(job domain.Job, rating int, comment string) (*domain.Review, error)
	AcceptGate chan struct{}
}

func (j *Jobs) record(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Calls = append(j.Calls, name)
}

// CallLog returns the recorded calls.
func (j *Jobs) CallLog() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.Calls...)
}

func (j *Jobs) Hire(_ context.Context, _ domain.User, service domain.Service, start, end time.Time, _ []domain.Job) (*domain.Job, error) {
	j.record("Hire")
	if j.HireFn == nil {
		return nil, domain.ErrNotImplemented
	}
	return j.HireFn(service, start, end)
}

func (j *Jobs) Accept(_ context.Context, _ domain.User, job domain.Job) (*domain.Job, error) {
	j.record("Accept")
	if j.AcceptGate != nil {
		<-j.AcceptGate
	}
	if j.ActionErr != nil {
		return nil, j.ActionErr
	}
	job.Status = domain.JobStatusInProgress
	return &job, nil
}

func (j *Jobs) Complete(_ context.Context, viewer domain.User, job domain.Job) (*domain.Job, error) {
	j.record("Complete")
	if j.ActionErr != nil {
		return nil, j.ActionErr
	}
	switch job.PartyOf(viewer.ID) {
	case domain.PartyContractor:
		job.ClientConfirmed = true
	case domain.PartyVendor:
		job.VendorConfirmed = true
	}
	return &job, nil
}

func (j *Jobs) Cancel(_ context.Context, _ domain.User, job domain.Job) (*domain.Job, error) {
	j.record("Cancel")
	if j.ActionErr != nil {
		return nil, j.ActionErr
	}
	job.Status = domain.JobStatusCancelled
	return &job, nil
}

func (j *Jobs) Review(_ context.Context, _ domain.User, job domain.Job, rating int, comment string) (*domain.Review, error) {
	j.record("Review")
	if j.ReviewFn != nil {
		return j.ReviewFn(job, rating, comment)
	}
	if j.ActionErr != nil {
		return nil, j.ActionErr
	}
	return &domain.Review{ID: 1, JobID: job.ID, Rating: rating, Comment: comment}, nil
}

func (j *Jobs) Get(_ context.Context, id int64) (*domain.Job, error) {
	for _, job := range j.Mine {
		if job.ID == id {
			return &job, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (j *Jobs) ListMine(_ context.Context, viewer domain.User) ([]domain.Job, error) {
	j.record("ListMine")
	if viewer.ID == 0 {
		return nil, domain.ErrAuthRequired
	}
	return j.Mine, j.ListErr
}

func (j *Jobs) Hired(_ context.Context, viewer domain.User) ([]domain.Job, error) {
	j.record("Hired")
	if viewer.ID == 0 {
		return nil, domain.ErrAuthRequired
	}
	var hired []domain.Job
	for _, job := range j.Mine {
		if job.PartyOf(viewer.ID) == domain.PartyContractor {
			hired = append(hired, job)
		}
	}
	return hired, j.ListErr
}

func (j *Jobs) LatestForService(_ context.Context, viewer domain.User, service domain.Service) (*domain.Job, error) {
	if viewer.ID == 0 {
		return nil, nil
	}
	if j.LatestErr != nil {
		return nil, j.LatestErr
	}
	return domain.LatestForService(j.Mine, service.ID), nil
}

// Profile is a fake driving.ProfileService.
type Profile struct {
	Users      map[int64]domain.User
	UserSkills map[int64][]domain.Skill
	All        []domain.Skill

	// Added collects every skill id passed to AddSkill or AssignSkills.
	Added []int64
}

func (p *Profile) Get(_ context.Context, id int64) (*domain.User, error) {
	u, ok := p.Users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (p *Profile) Update(context.Context, domain.ProfileUpdate) (*domain.User, error) {
	return nil, domain.ErrNotImplemented
}

func (p *Profile) AllSkills(context.Context) ([]domain.Skill, error) {
	return p.All, nil
}

func (p *Profile) Skills(_ context.Context, userID int64) ([]domain.Skill, error) {
	return p.UserSkills[userID], nil
}

func (p *Profile) AddSkill(_ context.Context, skillID int64) error {
	p.Added = append(p.Added, skillID)
	return nil
}

func (p *Profile) AssignSkills(_ context.Context, skillIDs []int64) error {
	p.Added = append(p.Added, skillIDs...)
	return nil
}

func (p *Profile) RemoveSkill(context.Context, int64) error {
	return domain.ErrNotImplemented
}
