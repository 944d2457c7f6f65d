package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servilink/servilink-cli/internal/adapters/driven/storage/memory"
	"github.com/servilink/servilink-cli/internal/core/domain"
)

var draft = domain.ServiceDraft{Title: "Garden care", Price: 100, SkillID: 3, IsActive: true}

func TestCatalogService_Create(t *testing.T) {
	backend := &mockMarketplace{}
	catalog := NewCatalogService(backend, backend, loggedIn(vendor))

	svc, err := catalog.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, svc.VendorID)
}

func TestCatalogService_Create_Guards(t *testing.T) {
	backend := &mockMarketplace{}
	ctx := context.Background()

	anon := NewCatalogService(backend, backend, NewSessionService(memory.NewSessionStore(), nil))
	_, err := anon.Create(ctx, draft)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	asContractor := NewCatalogService(backend, backend, loggedIn(contractor))
	_, err = asContractor.Create(ctx, draft)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	asVendor := NewCatalogService(backend, backend, loggedIn(vendor))
	_, err = asVendor.Create(ctx, domain.ServiceDraft{Title: "no price", SkillID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, backend.Calls())
}

func TestCatalogService_UpdateDelete_OwnerCheck(t *testing.T) {
	backend := &mockMarketplace{getServiceFn: func(id int64) (*domain.Service, error) {
		s := service100
		s.ID = id
		return &s, nil
	}}
	ctx := context.Background()

	owner := NewCatalogService(backend, backend, loggedIn(vendor))
	_, err := owner.Update(ctx, 10, draft)
	require.NoError(t, err)
	require.NoError(t, owner.Delete(ctx, 10))

	other := domain.User{ID: 77, RawRole: "vendor", Role: domain.RoleVendor, Name: "Other"}
	intruder := NewCatalogService(backend, backend, loggedIn(other))
	_, err = intruder.Update(ctx, 10, draft)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, intruder.Delete(ctx, 10), domain.ErrForbidden)
}

func TestCatalogService_Reviews(t *testing.T) {
	backend := &mockMarketplace{reviewsFn: func(serviceID int64) ([]domain.Review, error) {
		return []domain.Review{{ID: 1, Rating: 5}, {ID: 2, Rating: 3}}, nil
	}}
	catalog := NewCatalogService(backend, backend, loggedIn(contractor))

	reviews, err := catalog.Reviews(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
