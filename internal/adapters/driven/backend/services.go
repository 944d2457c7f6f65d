package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
)

// SearchServices queries GET /services/search. Unset bounds are omitted.
func (c *Client) SearchServices(ctx context.Context, p driven.SearchParams) ([]domain.Service, error) {
	q := url.Values{}
	q.Set("query", p.Query)
	if p.SortBy != "" {
		q.Set("sort_by", string(p.SortBy))
	}
	setFloat(q, "min_price", p.MinPrice)
	setFloat(q, "max_price", p.MaxPrice)
	setFloat(q, "min_rating", p.MinRating)

	var out []serviceDTO
	if err := c.do(ctx, http.MethodGet, "/services/search", q, nil, &out); err != nil {
		return nil, err
	}
	return servicesToDomain(out), nil
}

// GetService fetches one service.
func (c *Client) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	var out serviceDTO
	if err := c.do(ctx, http.MethodGet, idPath("/services/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// ListVendorServices returns the services posted by a vendor.
func (c *Client) ListVendorServices(ctx context.Context, vendorID int64) ([]domain.Service, error) {
	var out []serviceDTO
	if err := c.do(ctx, http.MethodGet, idPath("/users/%d/services", vendorID), nil, nil, &out); err != nil {
		return nil, err
	}
	return servicesToDomain(out), nil
}

// CreateService posts a new service.
func (c *Client) CreateService(ctx context.Context, vendorID int64, d domain.ServiceDraft) (*domain.Service, error) {
	var out serviceDTO
	if err := c.do(ctx, http.MethodPost, "/services/", nil, newServiceWrite(vendorID, d), &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// UpdateService replaces the editable fields of a service.
func (c *Client) UpdateService(ctx context.Context, id int64, d domain.ServiceDraft) (*domain.Service, error) {
	var out serviceDTO
	if err := c.do(ctx, http.MethodPut, idPath("/services/%d", id), nil, newServiceWrite(0, d), &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// DeleteService removes a service.
func (c *Client) DeleteService(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/services/%d", id), nil, nil, nil)
}

func servicesToDomain(in []serviceDTO) []domain.Service {
	out := make([]domain.Service, 0, len(in))
	for i := range in {
		out = append(out, *in[i].toDomain())
	}
	return out
}

func setFloat(q url.Values, key string, v *float64) {
	if v == nil {
		return
	}
	q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
}
