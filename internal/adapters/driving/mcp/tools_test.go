package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/tuitest"
	"github.com/servilink/servilink-cli/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("pages results using the configured size", func(t *testing.T) {
		search := &mockSearchService{results: sampleServices(20)}
		srv := &Server{ports: &Ports{
			Search:   search,
			Catalog:  &mockCatalogService{},
			Settings: &mockSettingsService{settings: domainSettings(9)},
		}}

		minPrice := 5.0
		_, out, err := srv.handleSearch(ctx, nil, SearchInput{
			Query:    "plumbing",
			MinPrice: &minPrice,
			Sort:     "price_asc",
			Page:     3,
		})

		require.NoError(t, err)
		assert.Equal(t, 20, out.Total)
		assert.Equal(t, 3, out.Page)
		assert.Equal(t, 3, out.TotalPages)
		require.Len(t, out.Services, 2)
		assert.Equal(t, int64(19), out.Services[0].ID)

		assert.Equal(t, "plumbing", search.last.Query)
		require.NotNil(t, search.last.MinPrice)
		assert.InDelta(t, 5.0, *search.last.MinPrice, 0.001)
		assert.Nil(t, search.last.MaxPrice)
		assert.Equal(t, domain.SortPriceAsc, search.last.Sort)
	})

	t.Run("page past the end clamps to the last page", func(t *testing.T) {
		srv := &Server{ports: &Ports{Search: &mockSearchService{results: sampleServices(3)}}}

		_, out, err := srv.handleSearch(ctx, nil, SearchInput{Page: 7})

		require.NoError(t, err)
		assert.Equal(t, 1, out.Page)
		assert.Len(t, out.Services, 3)
	})

	t.Run("empty results", func(t *testing.T) {
		srv := &Server{ports: &Ports{Search: &mockSearchService{}}}

		_, out, err := srv.handleSearch(ctx, nil, SearchInput{Query: "nothing"})

		require.NoError(t, err)
		assert.Empty(t, out.Services)
		assert.Equal(t, 1, out.TotalPages)
	})

	t.Run("rejects unknown sort", func(t *testing.T) {
		search := &mockSearchService{}
		srv := &Server{ports: &Ports{Search: search}}

		_, _, err := srv.handleSearch(ctx, nil, SearchInput{Sort: "cheapest"})

		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, search.last.Query)
	})

	t.Run("returns search error", func(t *testing.T) {
		srv := &Server{ports: &Ports{Search: &mockSearchService{err: domain.ErrUnavailable}}}

		_, _, err := srv.handleSearch(ctx, nil, SearchInput{Query: "x"})

		require.ErrorIs(t, err, domain.ErrUnavailable)
	})
}

func TestServer_handleGetService(t *testing.T) {
	ctx := context.Background()
	svc := &domain.Service{
		ID:        5,
		VendorID:  10,
		Vendor:    &domain.User{ID: 10, Name: "Vera"},
		Title:     "Garden care",
		Price:     40,
		Skill:     &domain.Skill{ID: 2, Name: "Gardening"},
		AvgRating: 4.5,
		IsActive:  true,
	}
	catalog := &mockCatalogService{
		service: svc,
		reviews: []domain.Review{{ID: 1, Rating: 5, Comment: "Great"}},
	}

	t.Run("guest sees service and reviews", func(t *testing.T) {
		srv := &Server{ports: &Ports{Search: &mockSearchService{}, Catalog: catalog}}

		_, out, err := srv.handleGetService(ctx, nil, ServiceInput{ServiceID: 5})

		require.NoError(t, err)
		assert.Equal(t, "Garden care", out.Service.Title)
		assert.Equal(t, "Gardening", out.Service.Category)
		assert.Equal(t, "Vera", out.Service.Vendor)
		require.Len(t, out.Reviews, 1)
		assert.Equal(t, "Great", out.Reviews[0].Comment)
		assert.Nil(t, out.Job)
	})

	t.Run("contractor sees their latest job", func(t *testing.T) {
		contractor := tuitest.Contractor(20)
		jobs := &tuitest.Jobs{Mine: []domain.Job{
			{ID: 7, ServiceID: 5, ContractorID: 20, VendorID: 10, Status: domain.JobStatusPending},
		}}
		srv := &Server{ports: &Ports{
			Search:  &mockSearchService{},
			Catalog: catalog,
			Jobs:    jobs,
			Session: tuitest.Session(t, &contractor),
		}}

		_, out, err := srv.handleGetService(ctx, nil, ServiceInput{ServiceID: 5})

		require.NoError(t, err)
		require.NotNil(t, out.Job)
		assert.Equal(t, int64(7), out.Job.ID)
		assert.Equal(t, "pendiente", out.Job.Status)
		assert.Equal(t, "contractor", out.Job.Party)
		assert.Equal(t, domain.HintAwaitingVendor, out.Job.Hint)
		assert.Equal(t, []string{"cancel"}, out.Job.Actions)
	})

	t.Run("unknown service", func(t *testing.T) {
		srv := &Server{ports: &Ports{Search: &mockSearchService{}, Catalog: catalog}}

		_, _, err := srv.handleGetService(ctx, nil, ServiceInput{ServiceID: 99})

		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleListJobs(t *testing.T) {
	ctx := context.Background()

	t.Run("unavailable without jobs port", func(t *testing.T) {
		srv := &Server{ports: &Ports{Search: &mockSearchService{}, Catalog: &mockCatalogService{}}}

		_, _, err := srv.handleListJobs(ctx, nil, ListJobsInput{})

		require.ErrorIs(t, err, ErrJobsUnavailable)
	})

	t.Run("guest must log in", func(t *testing.T) {
		jobs := &tuitest.Jobs{}
		srv := &Server{ports: &Ports{Jobs: jobs, Session: tuitest.Session(t, nil)}}

		_, _, err := srv.handleListJobs(ctx, nil, ListJobsInput{})

		require.ErrorIs(t, err, domain.ErrAuthRequired)
		assert.Empty(t, jobs.CallLog())
	})

	t.Run("vendor sees accept on pending jobs", func(t *testing.T) {
		vendor := tuitest.Vendor(10)
		jobs := &tuitest.Jobs{Mine: []domain.Job{
			{ID: 7, ServiceID: 5, ContractorID: 20, VendorID: 10, Status: domain.JobStatusPending},
			{ID: 8, ServiceID: 6, ContractorID: 21, VendorID: 10, Status: domain.JobStatusCancelled},
		}}
		srv := &Server{ports: &Ports{Jobs: jobs, Session: tuitest.Session(t, &vendor)}}

		_, out, err := srv.handleListJobs(ctx, nil, ListJobsInput{})

		require.NoError(t, err)
		require.Len(t, out.Jobs, 2)
		assert.Equal(t, []string{"accept", "cancel"}, out.Jobs[0].Actions)
		assert.Empty(t, out.Jobs[1].Actions)
		assert.Equal(t, "Cancelled", out.Jobs[1].Label)
	})
}

func TestServer_handleJobAction(t *testing.T) {
	ctx := context.Background()
	pending := domain.Job{ID: 7, ServiceID: 5, ContractorID: 20, VendorID: 10, Status: domain.JobStatusPending}

	newServer := func(t *testing.T, viewer domain.User, jobs *tuitest.Jobs) *Server {
		return &Server{ports: &Ports{Jobs: jobs, Session: tuitest.Session(t, &viewer)}}
	}

	t.Run("vendor accepts", func(t *testing.T) {
		jobs := &tuitest.Jobs{Mine: []domain.Job{pending}}
		srv := newServer(t, tuitest.Vendor(10), jobs)

		_, out, err := srv.handleJobAction(ctx, nil, JobActionInput{JobID: 7, Action: "accept"})

		require.NoError(t, err)
		assert.Equal(t, "Job accepted. It is now in progress.", out.Message)
		require.NotNil(t, out.Job)
		assert.Equal(t, "en_progreso", out.Job.Status)
		assert.Equal(t, []string{"Accept"}, jobs.CallLog())
	})

	t.Run("contractor cannot accept", func(t *testing.T) {
		jobs := &tuitest.Jobs{Mine: []domain.Job{pending}}
		srv := newServer(t, tuitest.Contractor(20), jobs)

		_, _, err := srv.handleJobAction(ctx, nil, JobActionInput{JobID: 7, Action: "accept"})

		require.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Empty(t, jobs.CallLog())
	})

	t.Run("first completion waits for the other party", func(t *testing.T) {
		job := pending
		job.Status = domain.JobStatusInProgress
		jobs := &tuitest.Jobs{Mine: []domain.Job{job}}
		srv := newServer(t, tuitest.Contractor(20), jobs)

		_, out, err := srv.handleJobAction(ctx, nil, JobActionInput{JobID: 7, Action: "complete"})

		require.NoError(t, err)
		assert.Equal(t, "Completion confirmed. Waiting for the other party.", out.Message)
		assert.Equal(t, domain.HintAwaitingConfirmation, out.Job.Hint)
	})

	t.Run("review passes rating and comment", func(t *testing.T) {
		job := pending
		job.Status = domain.JobStatusCompleted
		var gotRating int
		var gotComment string
		jobs := &tuitest.Jobs{
			Mine: []domain.Job{job},
			ReviewFn: func(j domain.Job, rating int, comment string) (*domain.Review, error) {
				gotRating, gotComment = rating, comment
				return &domain.Review{JobID: j.ID, Rating: rating, Comment: comment}, nil
			},
		}
		srv := newServer(t, tuitest.Contractor(20), jobs)

		_, out, err := srv.handleJobAction(ctx, nil, JobActionInput{JobID: 7, Action: "review", Rating: 4, Comment: "Tidy"})

		require.NoError(t, err)
		assert.Equal(t, "Review submitted. Thank you!", out.Message)
		assert.Equal(t, 4, gotRating)
		assert.Equal(t, "Tidy", gotComment)
	})

	t.Run("backend failure is reported", func(t *testing.T) {
		jobs := &tuitest.Jobs{Mine: []domain.Job{pending}, ActionErr: domain.ErrUnavailable}
		srv := newServer(t, tuitest.Vendor(10), jobs)

		_, _, err := srv.handleJobAction(ctx, nil, JobActionInput{JobID: 7, Action: "cancel"})

		require.ErrorIs(t, err, domain.ErrUnavailable)
		assert.Contains(t, err.Error(), domain.UserMessage(domain.ErrUnavailable))
	})

	t.Run("unknown action", func(t *testing.T) {
		srv := newServer(t, tuitest.Vendor(10), &tuitest.Jobs{Mine: []domain.Job{pending}})

		_, _, err := srv.handleJobAction(ctx, nil, JobActionInput{JobID: 7, Action: "approve"})

		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown job", func(t *testing.T) {
		srv := newServer(t, tuitest.Vendor(10), &tuitest.Jobs{})

		_, _, err := srv.handleJobAction(ctx, nil, JobActionInput{JobID: 99, Action: "accept"})

		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}
