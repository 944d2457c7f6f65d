package services

import (
	"context"
	"fmt"
	"time"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
	"github.com/servilink/servilink-cli/internal/logger"
)

// Ensure JobService implements the interface.
var _ driving.JobService = (*JobService)(nil)

// JobService issues job lifecycle requests after checking the job view
// allows them. Results always come from the backend response.
type JobService struct {
	jobs    driven.JobGateway
	reviews driven.ReviewGateway
}

// NewJobService creates a new job service.
func NewJobService(jobs driven.JobGateway, reviews driven.ReviewGateway) *JobService {
	return &JobService{jobs: jobs, reviews: reviews}
}

// Hire creates a pending job for service at the service's price.
func (s *JobService) Hire(
	ctx context.Context,
	viewer domain.User,
	service domain.Service,
	start, end time.Time,
	known []domain.Job,
) (*domain.Job, error) {
	if viewer.ID == 0 {
		return nil, domain.ErrAuthRequired
	}
	if service.OwnedBy(viewer.ID) {
		return nil, domain.ErrOwnService
	}
	if domain.HasActiveJob(known, viewer.ID, service.ID) {
		return nil, domain.ErrActiveJobExists
	}
	if start.IsZero() {
		return nil, fmt.Errorf("start date is required: %w", domain.ErrInvalidInput)
	}
	if end.IsZero() {
		end = start
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date before start date: %w", domain.ErrInvalidInput)
	}

	vendorID := service.VendorID
	if service.Vendor != nil && service.Vendor.ID != 0 {
		vendorID = service.Vendor.ID
	}

	logger.Debug("jobs: hiring service %d for user %d", service.ID, viewer.ID)
	job, err := s.jobs.CreateJob(ctx, domain.HireRequest{
		ServiceID:    service.ID,
		ContractorID: viewer.ID,
		VendorID:     vendorID,
		StartDate:    start,
		EndDate:      end,
		TotalAmount:  service.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("hire service %d: %w", service.ID, err)
	}
	return job, nil
}

// Accept moves a pending job to in progress. Vendor only.
func (s *JobService) Accept(ctx context.Context, viewer domain.User, job domain.Job) (*domain.Job, error) {
	if err := checkAction(viewer, job, domain.ActionAccept); err != nil {
		return nil, err
	}
	updated, err := s.jobs.AcceptJob(ctx, job.ID, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("accept job %d: %w", job.ID, err)
	}
	return updated, nil
}

// Complete records the viewer's completion confirmation. A repeated
// confirmation returns the job unchanged without contacting the backend.
func (s *JobService) Complete(ctx context.Context, viewer domain.User, job domain.Job) (*domain.Job, error) {
	party := job.PartyOf(viewer.ID)
	if job.EffectiveStatus() == domain.JobStatusInProgress && job.ConfirmedBy(party) {
		logger.Debug("jobs: user %d already confirmed job %d", viewer.ID, job.ID)
		return &job, nil
	}
	if err := checkAction(viewer, job, domain.ActionComplete); err != nil {
		return nil, err
	}

	updated, err := s.jobs.CompleteJob(ctx, job.ID, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("complete job %d: %w", job.ID, err)
	}
	return updated, nil
}

// Cancel cancels a pending or in-progress job.
func (s *JobService) Cancel(ctx context.Context, viewer domain.User, job domain.Job) (*domain.Job, error) {
	if err := checkAction(viewer, job, domain.ActionCancel); err != nil {
		return nil, err
	}
	updated, err := s.jobs.SetJobStatus(ctx, job.ID, domain.JobStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel job %d: %w", job.ID, err)
	}
	return updated, nil
}

// Review rates a completed job. Contractor only.
func (s *JobService) Review(
	ctx context.Context,
	viewer domain.User,
	job domain.Job,
	rating int,
	comment string,
) (*domain.Review, error) {
	if err := checkAction(viewer, job, domain.ActionReview); err != nil {
		return nil, err
	}
	if err := domain.ValidateRating(rating); err != nil {
		return nil, fmt.Errorf("rating must be between %d and %d: %w", domain.MinRating, domain.MaxRating, err)
	}

	review, err := s.reviews.CreateReview(ctx, job.ID, rating, comment)
	if err != nil {
		return nil, fmt.Errorf("review job %d: %w", job.ID, err)
	}
	return review, nil
}

// Get fetches a job by ID.
func (s *JobService) Get(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := s.jobs.GetJob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get job %d: %w", id, err)
	}
	return job, nil
}

// ListMine lists the viewer's jobs: received jobs for vendors,
// hired jobs for everyone else.
func (s *JobService) ListMine(ctx context.Context, viewer domain.User) ([]domain.Job, error) {
	if viewer.ID == 0 {
		return nil, domain.ErrAuthRequired
	}

	var (
		jobs []domain.Job
		err  error
	)
	if viewer.IsVendor() {
		jobs, err = s.jobs.JobsAsVendor(ctx, viewer.ID)
	} else {
		jobs, err = s.jobs.JobsAsContractor(ctx, viewer.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// Hired lists the jobs viewer hired, whatever their role. A vendor can
// hire other vendors' services, so duplicate checks must use this list
// rather than ListMine.
func (s *JobService) Hired(ctx context.Context, viewer domain.User) ([]domain.Job, error) {
	if viewer.ID == 0 {
		return nil, domain.ErrAuthRequired
	}
	jobs, err := s.jobs.ContractorJobs(ctx, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("list hired jobs: %w", err)
	}
	return jobs, nil
}

// LatestForService returns the viewer's newest job for a service, looking
// at received jobs when the viewer owns the service.
func (s *JobService) LatestForService(ctx context.Context, viewer domain.User, service domain.Service) (*domain.Job, error) {
	if viewer.ID == 0 {
		return nil, nil
	}

	var (
		jobs []domain.Job
		err  error
	)
	if service.OwnedBy(viewer.ID) {
		jobs, err = s.jobs.VendorJobs(ctx, viewer.ID)
	} else {
		jobs, err = s.jobs.ContractorJobs(ctx, viewer.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("list jobs for service %d: %w", service.ID, err)
	}
	return domain.LatestForService(jobs, service.ID), nil
}

// checkAction rejects actions the job view does not offer to viewer.
func checkAction(viewer domain.User, job domain.Job, action domain.JobAction) error {
	if viewer.ID == 0 {
		return domain.ErrAuthRequired
	}
	view := domain.NewJobView(job, viewer.ID)
	if view.Party == domain.PartyNone {
		return fmt.Errorf("user %d is not a party to job %d: %w", viewer.ID, job.ID, domain.ErrForbidden)
	}
	if !view.Allowed(action) {
		return fmt.Errorf("cannot %s a job that is %s: %w", action, view.Status, domain.ErrInvalidTransition)
	}
	return nil
}
