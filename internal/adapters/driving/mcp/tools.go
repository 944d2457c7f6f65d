package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/services"
)

// SearchInput is the input schema for the search_services tool.
type SearchInput struct {
	Query       string   `json:"query,omitempty" jsonschema:"free text matched against service titles and descriptions"`
	MinPrice    *float64 `json:"min_price,omitempty" jsonschema:"lowest acceptable price"`
	MaxPrice    *float64 `json:"max_price,omitempty" jsonschema:"highest acceptable price"`
	MinRating   *float64 `json:"min_rating,omitempty" jsonschema:"lowest acceptable average rating, 1 to 5"`
	Sort        string   `json:"sort,omitempty" jsonschema:"relevance, price_asc, price_desc or rating_desc"`
	CategoryIDs []int64  `json:"category_ids,omitempty" jsonschema:"skill ids to restrict results to"`
	Page        int      `json:"page,omitempty" jsonschema:"1-based page of results (default 1)"`
}

// SearchOutput is the output schema for the search_services tool.
type SearchOutput struct {
	Services   []ServiceOutput `json:"services"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
}

// ServiceOutput represents a single service.
type ServiceOutput struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	AvgRating   float64 `json:"avg_rating"`
	Category    string  `json:"category,omitempty"`
	Vendor      string  `json:"vendor,omitempty"`
	VendorID    int64   `json:"vendor_id"`
	Active      bool    `json:"active"`
}

// ReviewOutput represents a single review.
type ReviewOutput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
	Date    string `json:"date,omitempty"`
}

// JobOutput represents a job as the signed-in user sees it.
type JobOutput struct {
	ID           int64    `json:"id"`
	ServiceID    int64    `json:"service_id"`
	ServiceTitle string   `json:"service_title,omitempty"`
	Status       string   `json:"status"`
	Label        string   `json:"label"`
	Party        string   `json:"party"`
	Hint         string   `json:"hint,omitempty"`
	Actions      []string `json:"actions"`
	TotalAmount  float64  `json:"total_amount"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
}

// ServiceInput is the input schema for the get_service tool.
type ServiceInput struct {
	ServiceID int64 `json:"service_id" jsonschema:"id of the service"`
}

// ServiceDetailOutput is the output schema for the get_service tool.
type ServiceDetailOutput struct {
	Service ServiceOutput  `json:"service"`
	Reviews []ReviewOutput `json:"reviews"`
	Job     *JobOutput     `json:"job,omitempty"`
}

// ListJobsInput is the input schema for the list_jobs tool.
type ListJobsInput struct{}

// ListJobsOutput is the output schema for the list_jobs tool.
type ListJobsOutput struct {
	Jobs []JobOutput `json:"jobs"`
}

// JobActionInput is the input schema for the job_action tool.
type JobActionInput struct {
	JobID   int64  `json:"job_id" jsonschema:"id of the job"`
	Action  string `json:"action" jsonschema:"accept, complete, cancel or review"`
	Rating  int    `json:"rating,omitempty" jsonschema:"1 to 5, required for review"`
	Comment string `json:"comment,omitempty" jsonschema:"optional review comment"`
}

// JobActionOutput is the output schema for the job_action tool.
type JobActionOutput struct {
	Message string     `json:"message"`
	Job     *JobOutput `json:"job,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_services",
		Description: "Search the ServiLink catalogue by text, price, rating and category",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_service",
		Description: "Show a service with its reviews and the signed-in user's latest job for it",
	}, s.handleGetService)

	if !s.ports.jobsEnabled() {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_jobs",
		Description: "List the signed-in user's jobs with the actions currently available",
	}, s.handleListJobs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "job_action",
		Description: "Accept, complete, cancel or review a job as the signed-in user",
	}, s.handleJobAction)
}

// handleSearch handles the search_services tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	filter := domain.SearchFilter{
		Query:       input.Query,
		MinPrice:    input.MinPrice,
		MaxPrice:    input.MaxPrice,
		MinRating:   input.MinRating,
		Sort:        domain.SortKey(input.Sort),
		CategoryIDs: input.CategoryIDs,
	}
	if err := filter.Validate(); err != nil {
		return nil, SearchOutput{}, fmt.Errorf("sort %q: %w", input.Sort, err)
	}

	results, err := s.ports.Search.Search(ctx, filter)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	listing := domain.NewListing(s.ports.pageSize())
	listing.SetFilter(filter)
	listing.SetResults(results)
	if input.Page > 1 {
		listing.GoTo(input.Page)
	}

	window := listing.Window()
	output := SearchOutput{
		Services:   make([]ServiceOutput, len(window)),
		Total:      len(results),
		Page:       listing.Page(),
		TotalPages: listing.TotalPages(),
	}
	for i := range window {
		output.Services[i] = serviceOutput(&window[i])
	}
	return nil, output, nil
}

// handleGetService handles the get_service tool invocation.
func (s *Server) handleGetService(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ServiceInput,
) (*mcp.CallToolResult, ServiceDetailOutput, error) {
	svc, err := s.ports.Catalog.Get(ctx, input.ServiceID)
	if err != nil {
		return nil, ServiceDetailOutput{}, err
	}
	reviews, err := s.ports.Catalog.Reviews(ctx, input.ServiceID)
	if err != nil {
		return nil, ServiceDetailOutput{}, err
	}

	out := ServiceDetailOutput{
		Service: serviceOutput(svc),
		Reviews: make([]ReviewOutput, len(reviews)),
	}
	for i, r := range reviews {
		out.Reviews[i] = ReviewOutput{Rating: r.Rating, Comment: r.Comment, Date: formatDate(r.CreatedAt)}
	}

	if s.ports.jobsEnabled() {
		if viewer := s.ports.Session.Current().User(); viewer != nil {
			job, err := s.ports.Jobs.LatestForService(ctx, *viewer, *svc)
			if err != nil {
				return nil, ServiceDetailOutput{}, err
			}
			if job != nil {
				jo := jobOutput(domain.NewJobView(*job, viewer.ID))
				out.Job = &jo
			}
		}
	}
	return nil, out, nil
}

// handleListJobs handles the list_jobs tool invocation.
func (s *Server) handleListJobs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListJobsInput,
) (*mcp.CallToolResult, ListJobsOutput, error) {
	viewer, err := s.viewer()
	if err != nil {
		return nil, ListJobsOutput{}, err
	}
	jobs, err := s.ports.Jobs.ListMine(ctx, viewer)
	if err != nil {
		return nil, ListJobsOutput{}, err
	}

	out := ListJobsOutput{Jobs: make([]JobOutput, len(jobs))}
	for i := range jobs {
		out.Jobs[i] = jobOutput(domain.NewJobView(jobs[i], viewer.ID))
	}
	return nil, out, nil
}

// handleJobAction handles the job_action tool invocation.
func (s *Server) handleJobAction(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input JobActionInput,
) (*mcp.CallToolResult, JobActionOutput, error) {
	viewer, err := s.viewer()
	if err != nil {
		return nil, JobActionOutput{}, err
	}
	action, ok := domain.ParseJobAction(input.Action)
	if !ok {
		return nil, JobActionOutput{}, fmt.Errorf("unknown action %q: %w", input.Action, domain.ErrInvalidInput)
	}
	job, err := s.ports.Jobs.Get(ctx, input.JobID)
	if err != nil {
		return nil, JobActionOutput{}, err
	}

	tracker := services.NewJobTracker(s.ports.Jobs, viewer, *job)
	if !tracker.View().Allowed(action) {
		return nil, JobActionOutput{}, fmt.Errorf("%s on job %d: %w", action, job.ID, domain.ErrInvalidTransition)
	}
	outcome := tracker.Fire(ctx, action, services.ReviewInput{Rating: input.Rating, Comment: input.Comment})
	if outcome.Err != nil {
		return nil, JobActionOutput{}, fmt.Errorf("%s: %w", outcome.Message, outcome.Err)
	}

	jo := jobOutput(tracker.View())
	return nil, JobActionOutput{Message: outcome.Message, Job: &jo}, nil
}

func (s *Server) viewer() (domain.User, error) {
	if !s.ports.jobsEnabled() {
		return domain.User{}, ErrJobsUnavailable
	}
	u := s.ports.Session.Current().User()
	if u == nil {
		return domain.User{}, fmt.Errorf("run `servilink login` first: %w", domain.ErrAuthRequired)
	}
	return *u, nil
}

func serviceOutput(s *domain.Service) ServiceOutput {
	return ServiceOutput{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Price:       s.Price,
		AvgRating:   s.AvgRating,
		Category:    s.CategoryName(),
		Vendor:      s.VendorName(),
		VendorID:    s.VendorID,
		Active:      s.IsActive,
	}
}

func jobOutput(v domain.JobView) JobOutput {
	actions := make([]string, 0, len(v.Actions))
	for _, a := range v.EnabledActions() {
		actions = append(actions, string(a))
	}
	serviceID := v.Job.ServiceID
	if serviceID == 0 && v.Job.Service != nil {
		serviceID = v.Job.Service.ID
	}
	return JobOutput{
		ID:           v.Job.ID,
		ServiceID:    serviceID,
		ServiceTitle: v.Job.ServiceTitle(),
		Status:       v.Status.String(),
		Label:        v.Label,
		Party:        v.Party.String(),
		Hint:         v.Hint,
		Actions:      actions,
		TotalAmount:  v.Job.TotalAmount,
		StartDate:    formatDate(v.Job.StartDate),
		EndDate:      formatDate(v.Job.EndDate),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
