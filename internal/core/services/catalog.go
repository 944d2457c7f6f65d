package services

import (
	"context"
	"fmt"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService manages vendor services and their reviews.
type CatalogService struct {
	services driven.ServiceGateway
	reviews  driven.ReviewGateway
	session  driving.SessionService
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(services driven.ServiceGateway, reviews driven.ReviewGateway, session driving.SessionService) *CatalogService {
	return &CatalogService{services: services, reviews: reviews, session: session}
}

// Get returns a service by ID.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.services.GetService(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}
	return svc, nil
}

// ListByVendor returns the services posted by vendorID.
func (s *CatalogService) ListByVendor(ctx context.Context, vendorID int64) ([]domain.Service, error) {
	list, err := s.services.ListVendorServices(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list services of vendor %d: %w", vendorID, err)
	}
	return list, nil
}

// Create posts a service for the logged-in vendor.
func (s *CatalogService) Create(ctx context.Context, draft domain.ServiceDraft) (*domain.Service, error) {
	vendor, err := s.vendor()
	if err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("title, price and category are required: %w", err)
	}

	svc, err := s.services.CreateService(ctx, vendor.ID, draft)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return svc, nil
}

// Update edits a service owned by the logged-in vendor.
func (s *CatalogService) Update(ctx context.Context, id int64, draft domain.ServiceDraft) (*domain.Service, error) {
	if err := s.checkOwner(ctx, id); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("title, price and category are required: %w", err)
	}

	svc, err := s.services.UpdateService(ctx, id, draft)
	if err != nil {
		return nil, fmt.Errorf("update service %d: %w", id, err)
	}
	return svc, nil
}

// Delete removes a service owned by the logged-in vendor.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.checkOwner(ctx, id); err != nil {
		return err
	}
	if err := s.services.DeleteService(ctx, id); err != nil {
		return fmt.Errorf("delete service %d: %w", id, err)
	}
	return nil
}

// Reviews lists the reviews of a service.
func (s *CatalogService) Reviews(ctx context.Context, serviceID int64) ([]domain.Review, error) {
	reviews, err := s.reviews.ServiceReviews(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list reviews of service %d: %w", serviceID, err)
	}
	return reviews, nil
}

func (s *CatalogService) vendor() (*domain.User, error) {
	u := s.session.Current().User()
	if u == nil {
		return nil, domain.ErrAuthRequired
	}
	if !u.IsVendor() {
		return nil, fmt.Errorf("only vendors manage services: %w", domain.ErrForbidden)
	}
	return u, nil
}

// checkOwner is advisory; the backend remains the authority.
func (s *CatalogService) checkOwner(ctx context.Context, id int64) error {
	vendor, err := s.vendor()
	if err != nil {
		return err
	}
	svc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !svc.OwnedBy(vendor.ID) {
		return fmt.Errorf("service %d belongs to another vendor: %w", id, domain.ErrForbidden)
	}
	return nil
}
