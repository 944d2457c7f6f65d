package services

import (
	"context"
	"sync"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
)

var _ driven.Marketplace = (*mockMarketplace)(nil)

// mockMarketplace is a configurable backend. Unset funcs return zero values.
type mockMarketplace struct {
	mu    sync.Mutex
	calls []string

	loginFn          func(email, password string) (string, *domain.User, error)
	registerFn       func(reg domain.Registration) (*domain.User, error)
	getUserFn        func(id int64) (*domain.User, error)
	updateUserFn     func(id int64, u domain.ProfileUpdate) (*domain.User, error)
	listSkillsFn     func() ([]domain.Skill, error)
	userSkillsFn     func(userID int64) ([]domain.Skill, error)
	assignSkillsFn   func(userID int64, ids []int64) error
	searchFn         func(p driven.SearchParams) ([]domain.Service, error)
	getServiceFn     func(id int64) (*domain.Service, error)
	createServiceFn  func(vendorID int64, d domain.ServiceDraft) (*domain.Service, error)
	updateServiceFn  func(id int64, d domain.ServiceDraft) (*domain.Service, error)
	createJobFn      func(req domain.HireRequest) (*domain.Job, error)
	acceptJobFn      func(jobID, userID int64) (*domain.Job, error)
	completeJobFn    func(jobID, userID int64) (*domain.Job, error)
	setJobStatusFn   func(jobID int64, status domain.JobStatus) (*domain.Job, error)
	jobsContractorFn func(userID int64) ([]domain.Job, error)
	jobsVendorFn     func(userID int64) ([]domain.Job, error)
	hiredFn          func(userID int64) ([]domain.Job, error)
	receivedFn       func(userID int64) ([]domain.Job, error)
	createReviewFn   func(jobID int64, rating int, comment string) (*domain.Review, error)
	reviewsFn        func(serviceID int64) ([]domain.Review, error)
}

func (m *mockMarketplace) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockMarketplace) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockMarketplace) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	m.record("Login")
	if m.loginFn != nil {
		return m.loginFn(email, password)
	}
	return "", nil, domain.ErrNotImplemented
}

func (m *mockMarketplace) Register(_ context.Context, reg domain.Registration) (*domain.User, error) {
	m.record("Register")
	if m.registerFn != nil {
		return m.registerFn(reg)
	}
	return nil, domain.ErrNotImplemented
}

func (m *mockMarketplace) GetUser(_ context.Context, id int64) (*domain.User, error) {
	m.record("GetUser")
	if m.getUserFn != nil {
		return m.getUserFn(id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockMarketplace) UpdateUser(_ context.Context, id int64, u domain.ProfileUpdate) (*domain.User, error) {
	m.record("UpdateUser")
	if m.updateUserFn != nil {
		return m.updateUserFn(id, u)
	}
	return nil, domain.ErrNotImplemented
}

func (m *mockMarketplace) ListSkills(_ context.Context) ([]domain.Skill, error) {
	m.record("ListSkills")
	if m.listSkillsFn != nil {
		return m.listSkillsFn()
	}
	return nil, nil
}

func (m *mockMarketplace) UserSkills(_ context.Context, userID int64) ([]domain.Skill, error) {
	m.record("UserSkills")
	if m.userSkillsFn != nil {
		return m.userSkillsFn(userID)
	}
	return nil, nil
}

func (m *mockMarketplace) AddUserSkill(_ context.Context, _, _ int64) error {
	m.record("AddUserSkill")
	return nil
}

func (m *mockMarketplace) RemoveUserSkill(_ context.Context, _, _ int64) error {
	m.record("RemoveUserSkill")
	return nil
}

func (m *mockMarketplace) AssignUserSkills(_ context.Context, userID int64, ids []int64) error {
	m.record("AssignUserSkills")
	if m.assignSkillsFn != nil {
		return m.assignSkillsFn(userID, ids)
	}
	return nil
}

func (m *mockMarketplace) SearchServices(_ context.Context, p driven.SearchParams) ([]domain.Service, error) {
	m.record("SearchServices")
	if m.searchFn != nil {
		return m.searchFn(p)
	}
	return nil, nil
}

func (m *mockMarketplace) GetService(_ context.Context, id int64) (*domain.Service, error) {
	m.record("GetService")
	if m.getServiceFn != nil {
		return m.getServiceFn(id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockMarketplace) ListVendorServices(_ context.Context, _ int64) ([]domain.Service, error) {
	m.record("ListVendorServices")
	return nil, nil
}

func (m *mockMarketplace) CreateService(_ context.Context, vendorID int64, d domain.ServiceDraft) (*domain.Service, error) {
	m.record("CreateService")
	if m.createServiceFn != nil {
		return m.createServiceFn(vendorID, d)
	}
	return &domain.Service{ID: 1, VendorID: vendorID, Title: d.Title, Price: d.Price, SkillID: d.SkillID}, nil
}

func (m *mockMarketplace) UpdateService(_ context.Context, id int64, d domain.ServiceDraft) (*domain.Service, error) {
	m.record("UpdateService")
	if m.updateServiceFn != nil {
		return m.updateServiceFn(id, d)
	}
	return &domain.Service{ID: id, Title: d.Title}, nil
}

func (m *mockMarketplace) DeleteService(_ context.Context, _ int64) error {
	m.record("DeleteService")
	return nil
}

func (m *mockMarketplace) CreateJob(_ context.Context, req domain.HireRequest) (*domain.Job, error) {
	m.record("CreateJob")
	if m.createJobFn != nil {
		return m.createJobFn(req)
	}
	return nil, domain.ErrNotImplemented
}

func (m *mockMarketplace) GetJob(_ context.Context, id int64) (*domain.Job, error) {
	m.record("GetJob")
	return &domain.Job{ID: id}, nil
}

func (m *mockMarketplace) AcceptJob(_ context.Context, jobID, userID int64) (*domain.Job, error) {
	m.record("AcceptJob")
	if m.acceptJobFn != nil {
		return m.acceptJobFn(jobID, userID)
	}
	return nil, domain.ErrNotImplemented
}

func (m *mockMarketplace) CompleteJob(_ context.Context, jobID, userID int64) (*domain.Job, error) {
	m.record("CompleteJob")
	if m.completeJobFn != nil {
		return m.completeJobFn(jobID, userID)
	}
	return nil, domain.ErrNotImplemented
}

func (m *mockMarketplace) SetJobStatus(_ context.Context, jobID int64, status domain.JobStatus) (*domain.Job, error) {
	m.record("SetJobStatus")
	if m.setJobStatusFn != nil {
		return m.setJobStatusFn(jobID, status)
	}
	return nil, domain.ErrNotImplemented
}

func (m *mockMarketplace) JobsAsContractor(_ context.Context, userID int64) ([]domain.Job, error) {
	m.record("JobsAsContractor")
	if m.jobsContractorFn != nil {
		return m.jobsContractorFn(userID)
	}
	return nil, nil
}

func (m *mockMarketplace) JobsAsVendor(_ context.Context, userID int64) ([]domain.Job, error) {
	m.record("JobsAsVendor")
	if m.jobsVendorFn != nil {
		return m.jobsVendorFn(userID)
	}
	return nil, nil
}

func (m *mockMarketplace) ContractorJobs(_ context.Context, userID int64) ([]domain.Job, error) {
	m.record("ContractorJobs")
	if m.hiredFn != nil {
		return m.hiredFn(userID)
	}
	return nil, nil
}

func (m *mockMarketplace) VendorJobs(_ context.Context, userID int64) ([]domain.Job, error) {
	m.record("VendorJobs")
	if m.receivedFn != nil {
		return m.receivedFn(userID)
	}
	return nil, nil
}

func (m *mockMarketplace) CreateReview(_ context.Context, jobID int64, rating int, comment string) (*domain.Review, error) {
	m.record("CreateReview")
	if m.createReviewFn != nil {
		return m.createReviewFn(jobID, rating, comment)
	}
	return &domain.Review{ID: 1, JobID: jobID, Rating: rating, Comment: comment}, nil
}

func (m *mockMarketplace) ServiceReviews(_ context.Context, serviceID int64) ([]domain.Review, error) {
	m.record("ServiceReviews")
	if m.reviewsFn != nil {
		return m.reviewsFn(serviceID)
	}
	return nil, nil
}

// Shared fixtures.

var (
	contractor = domain.User{ID: 1, Name: "Carla", RawRole: "contratador", Role: domain.RoleContractor}
	vendor     = domain.User{ID: 2, Name: "Victor", RawRole: "vendedor", Role: domain.RoleVendor}
	service100 = domain.Service{ID: 10, VendorID: 2, Title: "Garden care", Price: 100}
)

func jobFor(status domain.JobStatus) domain.Job {
	return domain.Job{ID: 50, ServiceID: 10, ContractorID: 1, VendorID: 2, Status: status, TotalAmount: 100}
}

// loggedIn returns a session service already authenticated as user.
func loggedIn(user domain.User) *SessionService {
	s := NewSessionService(memorySessionStore(), nil)
	_ = s.Login(context.Background(), "token-"+user.Name, user)
	return s
}
