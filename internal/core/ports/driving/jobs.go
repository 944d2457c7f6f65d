package driving

import (
	"context"
	"time"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

// JobService issues job lifecycle requests.
// Every method returns the job as confirmed by the backend; callers
// never update displayed state before a method returns successfully.
type JobService interface {
	// Hire creates a pending job. known holds the jobs already on screen
	// and is used to reject duplicates before any request is sent.
	Hire(ctx context.Context, viewer domain.User, service domain.Service, start, end time.Time, known []domain.Job) (*domain.Job, error)

	// Accept moves a pending job to in progress. Vendor only.
	Accept(ctx context.Context, viewer domain.User, job domain.Job) (*domain.Job, error)

	// Complete records the viewer's completion confirmation.
	// It is a no-op when the viewer already confirmed.
	Complete(ctx context.Context, viewer domain.User, job domain.Job) (*domain.Job, error)

	// Cancel cancels a pending or in-progress job.
	Cancel(ctx context.Context, viewer domain.User, job domain.Job) (*domain.Job, error)

	// Review rates a completed job. Contractor only.
	Review(ctx context.Context, viewer domain.User, job domain.Job, rating int, comment string) (*domain.Review, error)

	// Get fetches a job by ID.
	Get(ctx context.Context, id int64) (*domain.Job, error)

	// ListMine lists the viewer's jobs for their role.
	ListMine(ctx context.Context, viewer domain.User) ([]domain.Job, error)

	// Hired lists the jobs the viewer hired, whatever their role.
	Hired(ctx context.Context, viewer domain.User) ([]domain.Job, error)

	// LatestForService returns the viewer's newest job for a service, or nil.
	LatestForService(ctx context.Context, viewer domain.User, service domain.Service) (*domain.Job, error)
}
