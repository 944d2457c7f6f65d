package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

// CreateJob hires a service.
func (c *Client) CreateJob(ctx context.Context, req domain.HireRequest) (*domain.Job, error) {
	body := jobCreateDTO{
		ContractorID: req.ContractorID,
		VendorID:     req.VendorID,
		ServiceID:    req.ServiceID,
		Status:       string(domain.JobStatusPending),
		StartDate:    wireDate(req.StartDate),
		EndDate:      wireDate(req.EndDate),
		TotalAmount:  req.TotalAmount,
	}
	return c.jobCall(ctx, http.MethodPost, "/jobs/", nil, body)
}

// GetJob fetches one job.
func (c *Client) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	return c.jobCall(ctx, http.MethodGet, idPath("/jobs/%d", id), nil, nil)
}

// AcceptJob moves a pending job to in progress on behalf of the vendor.
func (c *Client) AcceptJob(ctx context.Context, jobID, userID int64) (*domain.Job, error) {
	return c.jobCall(ctx, http.MethodPut, idPath("/jobs/%d/accept", jobID), nil, jobActionDTO{UserID: userID})
}

// CompleteJob records userID's completion confirmation.
func (c *Client) CompleteJob(ctx context.Context, jobID, userID int64) (*domain.Job, error) {
	return c.jobCall(ctx, http.MethodPut, idPath("/jobs/%d/complete", jobID), nil, jobActionDTO{UserID: userID})
}

// SetJobStatus forces a status. The response wraps the job in an envelope.
func (c *Client) SetJobStatus(ctx context.Context, jobID int64, status domain.JobStatus) (*domain.Job, error) {
	q := url.Values{"status": {string(status)}}
	var out jobStatusResponse
	if err := c.do(ctx, http.MethodPut, idPath("/jobs/%d/status", jobID), q, nil, &out); err != nil {
		return nil, err
	}
	return out.Job.toDomain()
}

// JobsAsContractor lists jobs hired by userID.
func (c *Client) JobsAsContractor(ctx context.Context, userID int64) ([]domain.Job, error) {
	return c.jobList(ctx, idPath("/users/%d/jobs-as-contractor", userID))
}

// JobsAsVendor lists jobs received by userID.
func (c *Client) JobsAsVendor(ctx context.Context, userID int64) ([]domain.Job, error) {
	return c.jobList(ctx, idPath("/users/%d/jobs-as-vendor", userID))
}

// ContractorJobs lists jobs hired by userID.
func (c *Client) ContractorJobs(ctx context.Context, userID int64) ([]domain.Job, error) {
	return c.jobList(ctx, idPath("/jobs/contractor/%d", userID))
}

// VendorJobs lists jobs received by userID.
func (c *Client) VendorJobs(ctx context.Context, userID int64) ([]domain.Job, error) {
	return c.jobList(ctx, idPath("/jobs/vendor/%d", userID))
}

func (c *Client) jobCall(ctx context.Context, method, path string, q url.Values, body any) (*domain.Job, error) {
	var out jobDTO
	if err := c.do(ctx, method, path, q, body, &out); err != nil {
		return nil, err
	}
	return out.toDomain()
}

func (c *Client) jobList(ctx context.Context, path string) ([]domain.Job, error) {
	var out []jobDTO
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return jobsToDomain(out)
}
