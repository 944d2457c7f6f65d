package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrBadNumber indicates a price or rating filter that is not a number.
	ErrBadNumber = errors.New("price and rating filters must be numbers")
)
