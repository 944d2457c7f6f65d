package driving

import (
	"context"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

// CatalogService manages individual services and their reviews.
type CatalogService interface {
	// Get returns a service by ID.
	Get(ctx context.Context, id int64) (*domain.Service, error)

	// ListByVendor returns the services posted by vendorID.
	ListByVendor(ctx context.Context, vendorID int64) ([]domain.Service, error)

	// Create posts a service for the logged-in vendor.
	Create(ctx context.Context, draft domain.ServiceDraft) (*domain.Service, error)

	// Update edits a service owned by the logged-in vendor.
	Update(ctx context.Context, id int64, draft domain.ServiceDraft) (*domain.Service, error)

	// Delete removes a service owned by the logged-in vendor.
	Delete(ctx context.Context, id int64) error

	// Reviews lists the reviews of a service.
	Reviews(ctx context.Context, serviceID int64) ([]domain.Review, error)
}
