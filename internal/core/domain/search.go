package domain

import "slices"

// SortKey orders search results on the backend.
type SortKey string

// Available sort keys.
const (
	SortRelevance  SortKey = "relevance"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortRatingDesc SortKey = "rating_desc"
)

// AllSortKeys lists sort keys in cycling order.
var AllSortKeys = []SortKey{SortRelevance, SortPriceAsc, SortPriceDesc, SortRatingDesc}

// IsValid returns true if the sort key is recognised.
func (k SortKey) IsValid() bool {
	return slices.Contains(AllSortKeys, k)
}

// Next returns the following sort key, wrapping around.
func (k SortKey) Next() SortKey {
	i := slices.Index(AllSortKeys, k)
	return AllSortKeys[(i+1)%len(AllSortKeys)]
}

// Description returns a human-readable description of the sort key.
func (k SortKey) Description() string {
	switch k {
	case SortRelevance:
		return "Relevance"
	case SortPriceAsc:
		return "Price: low to high"
	case SortPriceDesc:
		return "Price: high to low"
	case SortRatingDesc:
		return "Best rated"
	default:
		return "Unknown"
	}
}

// SearchFilter holds the user's search criteria.
// Price and rating bounds are nil when unset and are sent verbatim.
type SearchFilter struct {
	Query       string
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	Sort        SortKey
	CategoryIDs []int64
}

// Validate checks the sort key.
func (f SearchFilter) Validate() error {
	if f.Sort != "" && !f.Sort.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// Equal reports whether two filters select the same results.
// Category order is ignored.
func (f SearchFilter) Equal(o SearchFilter) bool {
	if f.Query != o.Query || f.Sort != o.Sort {
		return false
	}
	if !floatPtrEqual(f.MinPrice, o.MinPrice) || !floatPtrEqual(f.MaxPrice, o.MaxPrice) ||
		!floatPtrEqual(f.MinRating, o.MinRating) {
		return false
	}
	a := slices.Clone(f.CategoryIDs)
	b := slices.Clone(o.CategoryIDs)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// MatchesCategory reports whether s passes the category selection.
// An empty selection matches everything.
func (f SearchFilter) MatchesCategory(s *Service) bool {
	if len(f.CategoryIDs) == 0 {
		return true
	}
	id := s.SkillID
	if id == 0 && s.Skill != nil {
		id = s.Skill.ID
	}
	return slices.Contains(f.CategoryIDs, id)
}

// FilterByCategory returns the services matching the category selection,
// preserving backend order.
func FilterByCategory(services []Service, f SearchFilter) []Service {
	if len(f.CategoryIDs) == 0 {
		return services
	}
	out := make([]Service, 0, len(services))
	for i := range services {
		if f.MatchesCategory(&services[i]) {
			out = append(out, services[i])
		}
	}
	return out
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// DefaultPageSize is the number of results per page.
const DefaultPageSize = 9

// Listing is client-side pagination over a filtered result set.
// Changing the filter resets the page to 1.
type Listing struct {
	filter   SearchFilter
	results  []Service
	page     int
	pageSize int
}

// NewListing creates a listing. A non-positive size uses DefaultPageSize.
func NewListing(pageSize int) *Listing {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Listing{page: 1, pageSize: pageSize}
}

// Filter returns the current filter.
func (l *Listing) Filter() SearchFilter {
	return l.filter
}

// SetFilter replaces the filter, resetting to page 1 if it changed.
func (l *Listing) SetFilter(f SearchFilter) {
	if !l.filter.Equal(f) {
		l.page = 1
	}
	l.filter = f
}

// SetResults replaces the result set and clamps the current page.
func (l *Listing) SetResults(results []Service) {
	l.results = results
	if l.page > l.TotalPages() {
		l.page = l.TotalPages()
	}
}

// Results returns every result across pages.
func (l *Listing) Results() []Service {
	return l.results
}

// PageSize returns the number of services per page.
func (l *Listing) PageSize() int {
	return l.pageSize
}

// Page returns the 1-based current page.
func (l *Listing) Page() int {
	return l.page
}

// TotalPages returns the page count, at least 1.
func (l *Listing) TotalPages() int {
	if len(l.results) == 0 {
		return 1
	}
	return (len(l.results) + l.pageSize - 1) / l.pageSize
}

// GoTo moves to page p, clamped to the valid range.
func (l *Listing) GoTo(p int) {
	l.page = max(1, min(p, l.TotalPages()))
}

// Next advances one page. It returns false on the last page.
func (l *Listing) Next() bool {
	if !l.HasNext() {
		return false
	}
	l.page++
	return true
}

// Prev goes back one page. It returns false on the first page.
func (l *Listing) Prev() bool {
	if !l.HasPrev() {
		return false
	}
	l.page--
	return true
}

// HasPrev reports whether a previous page exists.
func (l *Listing) HasPrev() bool {
	return l.page > 1
}

// HasNext reports whether a following page exists.
func (l *Listing) HasNext() bool {
	return l.page < l.TotalPages()
}

// Window returns the results on the current page.
func (l *Listing) Window() []Service {
	start := (l.page - 1) * l.pageSize
	if start >= len(l.results) {
		return nil
	}
	end := min(start+l.pageSize, len(l.results))
	return l.results[start:end]
}
