package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
)

// Outcome is the result of one lifecycle action as shown to the user.
type Outcome struct {
	Action  domain.JobAction
	Job     *domain.Job
	Review  *domain.Review
	Message string
	Err     error
	// Stale is set when a newer request superseded this one.
	Stale bool
}

// ReviewInput carries the review form for ActionReview.
type ReviewInput struct {
	Rating  int
	Comment string
}

// JobTracker is the view-model of one displayed job. It only replaces the
// displayed job with a backend-confirmed one, and only for the latest
// request, so late responses cannot overwrite newer state.
type JobTracker struct {
	jobs   driving.JobService
	viewer domain.User

	mu      sync.Mutex
	gen     uint64
	view    domain.JobView
	lastErr error
}

// NewJobTracker creates a tracker for job as seen by viewer.
func NewJobTracker(jobs driving.JobService, viewer domain.User, job domain.Job) *JobTracker {
	return &JobTracker{
		jobs:   jobs,
		viewer: viewer,
		view:   domain.NewJobView(job, viewer.ID),
	}
}

// View returns the current display state.
func (t *JobTracker) View() domain.JobView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// Err returns the error of the last applied request, if any.
func (t *JobTracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// Reset replaces the displayed job, e.g. after a refetch, and invalidates
// every request in flight.
func (t *JobTracker) Reset(job domain.Job) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	t.view = domain.NewJobView(job, t.viewer.ID)
	t.lastErr = nil
}

// Begin starts a request and returns its generation.
func (t *JobTracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	return t.gen
}

// Request performs action against the job currently displayed.
// It does not touch the displayed state.
func (t *JobTracker) Request(ctx context.Context, action domain.JobAction, review ReviewInput) Outcome {
	job := t.View().Job

	out := Outcome{Action: action}
	switch action {
	case domain.ActionAccept:
		out.Job, out.Err = t.jobs.Accept(ctx, t.viewer, job)
	case domain.ActionComplete:
		out.Job, out.Err = t.jobs.Complete(ctx, t.viewer, job)
	case domain.ActionCancel:
		out.Job, out.Err = t.jobs.Cancel(ctx, t.viewer, job)
	case domain.ActionReview:
		out.Review, out.Err = t.jobs.Review(ctx, t.viewer, job, review.Rating, review.Comment)
	default:
		out.Err = fmt.Errorf("unknown action %q: %w", action, domain.ErrInvalidInput)
	}
	return out
}

// Apply records the outcome of the request started at gen. Failures leave
// the displayed job untouched; outcomes from superseded requests are dropped.
func (t *JobTracker) Apply(gen uint64, out Outcome) Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen {
		out.Stale = true
		return out
	}
	if out.Err != nil {
		t.lastErr = out.Err
		out.Message = domain.UserMessage(out.Err)
		return out
	}

	t.lastErr = nil
	if out.Job != nil {
		t.view = domain.NewJobView(*out.Job, t.viewer.ID)
	}
	out.Message = outcomeMessage(out.Action, t.view)
	return out
}

// Fire runs one action synchronously.
func (t *JobTracker) Fire(ctx context.Context, action domain.JobAction, review ReviewInput) Outcome {
	gen := t.Begin()
	return t.Apply(gen, t.Request(ctx, action, review))
}

func outcomeMessage(action domain.JobAction, view domain.JobView) string {
	switch action {
	case domain.ActionAccept:
		return "Job accepted. It is now in progress."
	case domain.ActionComplete:
		if view.Status == domain.JobStatusCompleted {
			return "Job completed."
		}
		return "Completion confirmed. Waiting for the other party."
	case domain.ActionCancel:
		return "Job cancelled."
	case domain.ActionReview:
		return "Review submitted. Thank you!"
	default:
		return ""
	}
}
