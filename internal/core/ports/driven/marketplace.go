package driven

import (
	"context"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

// UserGateway covers account endpoints.
type UserGateway interface {
	// Login exchanges credentials for a token and the user profile.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// Register creates an account.
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)

	// GetUser fetches a user by ID.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// UpdateUser applies a partial profile update.
	UpdateUser(ctx context.Context, id int64, update domain.ProfileUpdate) (*domain.User, error)
}

// SkillGateway covers the skill catalogue and per-user skills.
type SkillGateway interface {
	// ListSkills returns the whole catalogue.
	ListSkills(ctx context.Context) ([]domain.Skill, error)

	// UserSkills returns the skills a user declared.
	UserSkills(ctx context.Context, userID int64) ([]domain.Skill, error)

	// AddUserSkill attaches one skill.
	AddUserSkill(ctx context.Context, userID, skillID int64) error

	// RemoveUserSkill detaches one skill.
	RemoveUserSkill(ctx context.Context, userID, skillID int64) error

	// AssignUserSkills attaches several skills in one request.
	AssignUserSkills(ctx context.Context, userID int64, skillIDs []int64) error
}

// SearchParams are the query parameters of the search endpoint.
// Nil bounds are omitted; set bounds are sent verbatim.
type SearchParams struct {
	Query     string
	SortBy    domain.SortKey
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
}

// ServiceGateway covers vendor services.
type ServiceGateway interface {
	// SearchServices queries the marketplace.
	SearchServices(ctx context.Context, params SearchParams) ([]domain.Service, error)

	// GetService fetches one service.
	GetService(ctx context.Context, id int64) (*domain.Service, error)

	// ListVendorServices returns the services posted by a vendor.
	ListVendorServices(ctx context.Context, vendorID int64) ([]domain.Service, error)

	// CreateService posts a new service for vendorID.
	CreateService(ctx context.Context, vendorID int64, draft domain.ServiceDraft) (*domain.Service, error)

	// UpdateService replaces the editable fields of a service.
	UpdateService(ctx context.Context, id int64, draft domain.ServiceDraft) (*domain.Service, error)

	// DeleteService removes a service.
	DeleteService(ctx context.Context, id int64) error
}

// JobGateway covers job creation and lifecycle transitions.
// Every transition returns the job as the backend stored it.
type JobGateway interface {
	// CreateJob hires a service.
	CreateJob(ctx context.Context, req domain.HireRequest) (*domain.Job, error)

	// GetJob fetches one job.
	GetJob(ctx context.Context, id int64) (*domain.Job, error)

	// AcceptJob moves a pending job to in progress on behalf of the vendor.
	AcceptJob(ctx context.Context, jobID, userID int64) (*domain.Job, error)

	// CompleteJob records userID's completion confirmation.
	CompleteJob(ctx context.Context, jobID, userID int64) (*domain.Job, error)

	// SetJobStatus forces a status, used for cancellation.
	SetJobStatus(ctx context.Context, jobID int64, status domain.JobStatus) (*domain.Job, error)

	// JobsAsContractor lists jobs hired by userID.
	JobsAsContractor(ctx context.Context, userID int64) ([]domain.Job, error)

	// JobsAsVendor lists jobs received by userID.
	JobsAsVendor(ctx context.Context, userID int64) ([]domain.Job, error)

	// ContractorJobs lists jobs hired by userID from the jobs collection,
	// with the service embedded in each job.
	ContractorJobs(ctx context.Context, userID int64) ([]domain.Job, error)

	// VendorJobs lists jobs received by userID from the jobs collection.
	VendorJobs(ctx context.Context, userID int64) ([]domain.Job, error)
}

// ReviewGateway covers reviews.
type ReviewGateway interface {
	// CreateReview rates a completed job.
	CreateReview(ctx context.Context, jobID int64, rating int, comment string) (*domain.Review, error)

	// ServiceReviews lists the reviews of a service.
	ServiceReviews(ctx context.Context, serviceID int64) ([]domain.Review, error)
}

// Marketplace is the full backend surface.
type Marketplace interface {
	UserGateway
	SkillGateway
	ServiceGateway
	JobGateway
	ReviewGateway
}
