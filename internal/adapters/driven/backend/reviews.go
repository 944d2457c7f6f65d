package backend

import (
	"context"
	"net/http"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

// CreateReview rates a completed job. The backend rejects a second review
// for the same job with a 400 and a reason.
func (c *Client) CreateReview(ctx context.Context, jobID int64, rating int, comment string) (*domain.Review, error) {
	var out reviewDTO
	body := reviewCreateDTO{JobID: jobID, Rating: rating, Comment: comment}
	if err := c.do(ctx, http.MethodPost, "/reviews/", nil, body, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// ServiceReviews lists the reviews of a service.
func (c *Client) ServiceReviews(ctx context.Context, serviceID int64) ([]domain.Review, error) {
	var out []reviewDTO
	if err := c.do(ctx, http.MethodGet, idPath("/reviews/service/%d", serviceID), nil, nil, &out); err != nil {
		return nil, err
	}
	reviews := make([]domain.Review, 0, len(out))
	for i := range out {
		reviews = append(reviews, *out[i].toDomain())
	}
	return reviews, nil
}
