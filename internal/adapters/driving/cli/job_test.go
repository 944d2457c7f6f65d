package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/tuitest"
	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/services"
)

func pendingJob() domain.Job {
	return domain.Job{
		ID:           7,
		ServiceID:    5,
		ContractorID: 20,
		VendorID:     10,
		Service:      &domain.Service{ID: 5, Title: "Garden care"},
		Contractor:   &domain.User{ID: 20, Name: "Carlos"},
		Vendor:       &domain.User{ID: 10, Name: "Vera"},
		Status:       domain.JobStatusPending,
		TotalAmount:  100,
		StartDate:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestJobCmd_RequiresLogin(t *testing.T) {
	ts := setupTestServices(t, nil)

	_, err := execute(t, "job", "list")

	require.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Empty(t, ts.jobs.CallLog())
}

func TestJobListCmd(t *testing.T) {
	contractor := tuitest.Contractor(20)
	ts := setupTestServices(t, &contractor)
	ts.jobs.Mine = []domain.Job{pendingJob()}

	out, err := execute(t, "job", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "[7] Garden care")
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "2026-03-14 with Vera")
}

func TestJobListCmd_Empty(t *testing.T) {
	vendor := tuitest.Vendor(10)
	setupTestServices(t, &vendor)

	out, err := execute(t, "job", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No jobs yet.")
}

func TestJobShowCmd_VendorSeesAccept(t *testing.T) {
	vendor := tuitest.Vendor(10)
	ts := setupTestServices(t, &vendor)
	ts.jobs.Mine = []domain.Job{pendingJob()}

	out, err := execute(t, "job", "show", "7")

	require.NoError(t, err)
	assert.Contains(t, out, "Job 7: Garden care")
	assert.Contains(t, out, "Amount:  $100.00")
	assert.Contains(t, out, "servilink job accept 7")
	assert.Contains(t, out, "servilink job cancel 7")
}

func TestJobShowCmd_ContractorWaitsForVendor(t *testing.T) {
	contractor := tuitest.Contractor(20)
	ts := setupTestServices(t, &contractor)
	ts.jobs.Mine = []domain.Job{pendingJob()}

	out, err := execute(t, "job", "show", "7")

	require.NoError(t, err)
	assert.Contains(t, out, domain.HintAwaitingVendor)
	assert.NotContains(t, out, "job accept")
}

func TestJobShowCmd_BothConfirmedShowsCompleted(t *testing.T) {
	contractor := tuitest.Contractor(20)
	ts := setupTestServices(t, &contractor)
	job := pendingJob()
	job.Status = domain.JobStatusInProgress
	job.ClientConfirmed = true
	job.VendorConfirmed = true
	ts.jobs.Mine = []domain.Job{job}

	out, err := execute(t, "job", "show", "7")

	require.NoError(t, err)
	assert.Contains(t, out, "Status:  Completed")
	assert.Contains(t, out, "servilink job review 7")
}

func TestJobAcceptCmd(t *testing.T) {
	vendor := tuitest.Vendor(10)
	ts := setupTestServices(t, &vendor)
	ts.jobs.Mine = []domain.Job{pendingJob()}

	out, err := execute(t, "job", "accept", "7")

	require.NoError(t, err)
	assert.Contains(t, out, "Job accepted. It is now in progress.")
	assert.Contains(t, out, "Status:  In progress")
	assert.Equal(t, []string{"Accept"}, ts.jobs.CallLog())
}

func TestJobCompleteCmd_FirstConfirmation(t *testing.T) {
	contractor := tuitest.Contractor(20)
	ts := setupTestServices(t, &contractor)
	job := pendingJob()
	job.Status = domain.JobStatusInProgress
	ts.jobs.Mine = []domain.Job{job}

	out, err := execute(t, "job", "complete", "7")

	require.NoError(t, err)
	assert.Contains(t, out, "Completion confirmed. Waiting for the other party.")
	assert.Contains(t, out, "Client confirmed: yes   Vendor confirmed: no")
}

func TestJobReviewCmd_PassesRating(t *testing.T) {
	contractor := tuitest.Contractor(20)
	ts := setupTestServices(t, &contractor)
	job := pendingJob()
	job.Status = domain.JobStatusCompleted
	ts.jobs.Mine = []domain.Job{job}
	var gotRating int
	var gotComment string
	ts.jobs.ReviewFn = func(j domain.Job, rating int, comment string) (*domain.Review, error) {
		gotRating, gotComment = rating, comment
		return &domain.Review{JobID: j.ID, Rating: rating}, nil
	}

	out, err := execute(t, "job", "review", "7", "-r", "5", "-m", "  Spotless  ")

	require.NoError(t, err)
	assert.Contains(t, out, "Review submitted. Thank you!")
	assert.Equal(t, 5, gotRating)
	assert.Equal(t, "Spotless", gotComment)
}

func TestJobCancelCmd_BackendError(t *testing.T) {
	vendor := tuitest.Vendor(10)
	ts := setupTestServices(t, &vendor)
	ts.jobs.Mine = []domain.Job{pendingJob()}
	ts.jobs.ActionErr = domain.ErrForbidden

	_, err := execute(t, "job", "cancel", "7")

	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestJobHireCmd(t *testing.T) {
	contractor := tuitest.Contractor(20)
	ts := setupTestServices(t, &contractor)
	ts.catalog.Services[5] = domain.Service{ID: 5, VendorID: 10, Title: "Garden care", Price: 100}
	var gotStart, gotEnd time.Time
	ts.jobs.HireFn = func(s domain.Service, start, end time.Time) (*domain.Job, error) {
		gotStart, gotEnd = start, end
		return &domain.Job{ID: 9, ServiceID: s.ID, TotalAmount: s.Price, Status: domain.JobStatusPending}, nil
	}

	out, err := execute(t, "job", "hire", "5", "--start", "2026-03-14")

	require.NoError(t, err)
	assert.Contains(t, out, `Hired "Garden care" for $100.00. Job 9 is pending until the vendor accepts.`)
	assert.Equal(t, "2026-03-14", formatDate(gotStart))
	assert.True(t, gotEnd.IsZero())
	assert.Equal(t, []string{"Hired", "Hire"}, ts.jobs.CallLog())
}

func TestJobHireCmd_BadDate(t *testing.T) {
	contractor := tuitest.Contractor(20)
	ts := setupTestServices(t, &contractor)

	_, err := execute(t, "job", "hire", "5", "--start", "tomorrow")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, ts.jobs.CallLog())
}

func TestJobActionCmd_InvalidID(t *testing.T) {
	vendor := tuitest.Vendor(10)
	setupTestServices(t, &vendor)

	_, err := execute(t, "job", "accept", "seven")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// jobGateway is a backend double for running the real JobService under
// the commands. Jobs the user hired come from hired, received ones from
// received.
type jobGateway struct {
	hired    map[int64][]domain.Job
	received map[int64][]domain.Job
	created  []domain.HireRequest
}

func (g *jobGateway) CreateJob(_ context.Context, req domain.HireRequest) (*domain.Job, error) {
	g.created = append(g.created, req)
	return &domain.Job{
		ID: 99, ServiceID: req.ServiceID, ContractorID: req.ContractorID, VendorID: req.VendorID,
		Status: domain.JobStatusPending, TotalAmount: req.TotalAmount,
	}, nil
}

func (g *jobGateway) GetJob(context.Context, int64) (*domain.Job, error) {
	return nil, domain.ErrNotFound
}

func (g *jobGateway) AcceptJob(context.Context, int64, int64) (*domain.Job, error) {
	return nil, domain.ErrNotImplemented
}

func (g *jobGateway) CompleteJob(context.Context, int64, int64) (*domain.Job, error) {
	return nil, domain.ErrNotImplemented
}

func (g *jobGateway) SetJobStatus(context.Context, int64, domain.JobStatus) (*domain.Job, error) {
	return nil, domain.ErrNotImplemented
}

func (g *jobGateway) JobsAsContractor(_ context.Context, userID int64) ([]domain.Job, error) {
	return g.hired[userID], nil
}

func (g *jobGateway) JobsAsVendor(_ context.Context, userID int64) ([]domain.Job, error) {
	return g.received[userID], nil
}

func (g *jobGateway) ContractorJobs(_ context.Context, userID int64) ([]domain.Job, error) {
	return g.hired[userID], nil
}

func (g *jobGateway) VendorJobs(_ context.Context, userID int64) ([]domain.Job, error) {
	return g.received[userID], nil
}

func (g *jobGateway) CreateReview(context.Context, int64, int, string) (*domain.Review, error) {
	return nil, domain.ErrNotImplemented
}

func (g *jobGateway) ServiceReviews(context.Context, int64) ([]domain.Review, error) {
	return nil, nil
}

// useJobService swaps the jobs fake for the real service over gw.
func (ts *testServices) useJobService(gw *jobGateway) {
	SetServices(Services{
		Session: ts.session,
		Auth:    ts.auth,
		Search:  ts.search,
		Catalog: ts.catalog,
		Jobs:    services.NewJobService(gw, gw),
		Profile: ts.profile,
	})
}

func TestJobHireCmd_VendorWithActiveHireRejected(t *testing.T) {
	hirer := tuitest.Vendor(30)
	ts := setupTestServices(t, &hirer)
	ts.catalog.Services[5] = domain.Service{ID: 5, VendorID: 10, Title: "Garden care", Price: 100}

	existing := pendingJob()
	existing.ContractorID, existing.Contractor = 30, nil
	gw := &jobGateway{
		hired: map[int64][]domain.Job{30: {existing}},
		// Jobs the vendor received for their own services must not hide the hire.
		received: map[int64][]domain.Job{30: {{ID: 3, ServiceID: 8, ContractorID: 40, VendorID: 30, Status: domain.JobStatusPending}}},
	}
	ts.useJobService(gw)

	_, err := execute(t, "job", "hire", "5", "--start", "2026-06-01")

	require.ErrorIs(t, err, domain.ErrActiveJobExists)
	assert.Empty(t, gw.created)
}

func TestJobHireCmd_VendorHiresOtherVendor(t *testing.T) {
	hirer := tuitest.Vendor(30)
	ts := setupTestServices(t, &hirer)
	ts.catalog.Services[5] = domain.Service{ID: 5, VendorID: 10, Title: "Garden care", Price: 100}
	gw := &jobGateway{}
	ts.useJobService(gw)

	out, err := execute(t, "job", "hire", "5", "--start", "2026-06-01")

	require.NoError(t, err)
	assert.Contains(t, out, "Job 99 is pending")
	require.Len(t, gw.created, 1)
	assert.Equal(t, int64(30), gw.created[0].ContractorID)
	assert.Equal(t, int64(10), gw.created[0].VendorID)
}
