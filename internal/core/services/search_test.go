package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
)

func f64(v float64) *float64 { return &v }

func TestSearchService_PassesBoundsVerbatim(t *testing.T) {
	var got driven.SearchParams
	backend := &mockMarketplace{searchFn: func(p driven.SearchParams) ([]domain.Service, error) {
		got = p
		return nil, nil
	}}
	svc := NewSearchService(backend, backend)

	_, err := svc.Search(context.Background(), domain.SearchFilter{
		Query: "jardin", MinPrice: f64(10), MaxPrice: f64(50), Sort: domain.SortPriceAsc,
	})

	require.NoError(t, err)
	assert.Equal(t, "jardin", got.Query)
	require.NotNil(t, got.MinPrice)
	require.NotNil(t, got.MaxPrice)
	assert.InDelta(t, 10.0, *got.MinPrice, 0)
	assert.InDelta(t, 50.0, *got.MaxPrice, 0)
	assert.Nil(t, got.MinRating)
	assert.Equal(t, domain.SortPriceAsc, got.SortBy)
}

func TestSearchService_InvertedBoundsNotReordered(t *testing.T) {
	var got driven.SearchParams
	backend := &mockMarketplace{searchFn: func(p driven.SearchParams) ([]domain.Service, error) {
		got = p
		return nil, nil
	}}
	svc := NewSearchService(backend, backend)

	_, err := svc.Search(context.Background(), domain.SearchFilter{MinPrice: f64(80), MaxPrice: f64(20)})
	require.NoError(t, err)
	assert.InDelta(t, 80.0, *got.MinPrice, 0)
	assert.InDelta(t, 20.0, *got.MaxPrice, 0)
	assert.Equal(t, domain.SortRelevance, got.SortBy)
}

func TestSearchService_FiltersCategoriesLocally(t *testing.T) {
	backend := &mockMarketplace{searchFn: func(driven.SearchParams) ([]domain.Service, error) {
		return []domain.Service{
			{ID: 1, SkillID: 1}, {ID: 2, SkillID: 2}, {ID: 3, Skill: &domain.Skill{ID: 2}},
		}, nil
	}}
	svc := NewSearchService(backend, backend)

	results, err := svc.Search(context.Background(), domain.SearchFilter{CategoryIDs: []int64{2}})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(2), results[0].ID)
	assert.Equal(t, int64(3), results[1].ID)
}

func TestSearchService_Errors(t *testing.T) {
	backend := &mockMarketplace{searchFn: func(driven.SearchParams) ([]domain.Service, error) {
		return nil, errors.New("down")
	}}
	svc := NewSearchService(backend, backend)

	_, err := svc.Search(context.Background(), domain.SearchFilter{})
	assert.Error(t, err)

	_, err = svc.Search(context.Background(), domain.SearchFilter{Sort: "weird"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchService_Categories(t *testing.T) {
	backend := &mockMarketplace{listSkillsFn: func() ([]domain.Skill, error) {
		return []domain.Skill{{ID: 1, Name: "Plumbing"}}, nil
	}}
	svc := NewSearchService(backend, backend)

	skills, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, skills, 1)
}
