package mcp

import (
	"context"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.Service
	skills  []domain.Skill
	err     error
	last    domain.SearchFilter
}

func (m *mockSearchService) Search(_ context.Context, f domain.SearchFilter) ([]domain.Service, error) {
	m.last = f
	return m.results, m.err
}

func (m *mockSearchService) Categories(_ context.Context) ([]domain.Skill, error) {
	return m.skills, m.err
}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	service *domain.Service
	reviews []domain.Review
	err     error
}

func (m *mockCatalogService) Get(_ context.Context, id int64) (*domain.Service, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.service == nil || m.service.ID != id {
		return nil, domain.ErrNotFound
	}
	return m.service, nil
}

func (m *mockCatalogService) ListByVendor(_ context.Context, _ int64) ([]domain.Service, error) {
	return nil, m.err
}

func (m *mockCatalogService) Create(_ context.Context, _ domain.ServiceDraft) (*domain.Service, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockCatalogService) Update(_ context.Context, _ int64, _ domain.ServiceDraft) (*domain.Service, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockCatalogService) Delete(_ context.Context, _ int64) error {
	return domain.ErrNotImplemented
}

func (m *mockCatalogService) Reviews(_ context.Context, _ int64) ([]domain.Review, error) {
	return m.reviews, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) Set(_, _ string) error {
	return domain.ErrNotImplemented
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func sampleServices(n int) []domain.Service {
	out := make([]domain.Service, n)
	for i := range out {
		out[i] = domain.Service{ID: int64(i + 1), Title: "Service", Price: 10, IsActive: true}
	}
	return out
}

func domainSettings(pageSize int) domain.AppSettings {
	s := domain.DefaultAppSettings()
	s.Listing.PageSize = pageSize
	return s
}
