package giphy

import (
	"context"
)

// API is the set of fetchers the views depend on. None of them fail; errors
// are reported through the Err method of the returned response.
type API interface {
	// Search returns a page of results for a keyword
	Search(ctx context.Context, params SearchParams) *GifsResponse

	// Trending returns a page of trending items
	Trending(ctx context.Context, params TrendingParams) *GifsResponse

	// Suggestions returns tags related to a term
	Suggestions(ctx context.Context, term string) *TagsResponse

	// TrendingSearches returns the currently popular search terms
	TrendingSearches(ctx context.Context) *TermsResponse

	// GetByID looks up a single GIF
	GetByID(ctx context.Context, id string) *GifResponse
}

var _ API = (*Client)(nil)
