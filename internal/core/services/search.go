package services

import (
	"context"
	"fmt"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
	"github.com/servilink/servilink-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService queries the marketplace.
type SearchService struct {
	services driven.ServiceGateway
	skills   driven.SkillGateway
}

// NewSearchService creates a new search service.
func NewSearchService(services driven.ServiceGateway, skills driven.SkillGateway) *SearchService {
	return &SearchService{services: services, skills: skills}
}

// Search sends the filter's query, sort and bounds to the backend verbatim
// and then keeps only services in the selected categories.
func (s *SearchService) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Service, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sort key %q: %w", filter.Sort, err)
	}

	sort := filter.Sort
	if sort == "" {
		sort = domain.SortRelevance
	}

	logger.Section("Search")
	logger.Debug("query=%q sort=%s categories=%v", filter.Query, sort, filter.CategoryIDs)

	results, err := s.services.SearchServices(ctx, driven.SearchParams{
		Query:     filter.Query,
		SortBy:    sort,
		MinPrice:  filter.MinPrice,
		MaxPrice:  filter.MaxPrice,
		MinRating: filter.MinRating,
	})
	if err != nil {
		return nil, fmt.Errorf("search services: %w", err)
	}

	filtered := domain.FilterByCategory(results, filter)
	logger.Debug("backend returned %d services, %d after category filter", len(results), len(filtered))
	return filtered, nil
}

// Categories returns the skill catalogue.
func (s *SearchService) Categories(ctx context.Context) ([]domain.Skill, error) {
	skills, err := s.skills.ListSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}
