package driving

import (
	"context"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

// SearchService provides marketplace search to external actors.
type SearchService interface {
	// Search queries the backend and applies the category selection locally.
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Service, error)

	// Categories returns the skill catalogue used for category filters.
	Categories(ctx context.Context) ([]domain.Skill, error)
}
