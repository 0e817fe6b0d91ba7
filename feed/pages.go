package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/s0up4200/gifbox/giphy"
	"github.com/s0up4200/gifbox/store"
)

// TrendingPage fetches trending items for the tab active at fetch time
func TrendingPage(api giphy.API, state *store.State, rating giphy.Rating) PageFunc {
	return func(ctx context.Context, offset, limit int) *giphy.GifsResponse {
		return api.Trending(ctx, giphy.TrendingParams{
			Kind:   state.Tab(),
			Limit:  limit,
			Offset: offset,
			Rating: rating,
		})
	}
}

// SearchPage fetches search results for term in the tab active at fetch time
func SearchPage(api giphy.API, state *store.State, term string, rating giphy.Rating) PageFunc {
	query := strings.Join(strings.Fields(strings.ReplaceAll(term, "+", " ")), " ")
	return func(ctx context.Context, offset, limit int) *giphy.GifsResponse {
		return api.Search(ctx, giphy.SearchParams{
			Kind:   state.Tab(),
			Query:  query,
			Limit:  limit,
			Offset: offset,
			Rating: rating,
		})
	}
}

// NewTrending creates the trending view. Opening it clears the search query.
// The feed resets whenever the active tab changes.
func NewTrending(api giphy.API, state *store.State, rating giphy.Rating, opts ...Option) *Feed {
	state.SetSearchQuery("")

	opts = append([]Option{WithKey(func() string {
		return state.Tab().String()
	})}, opts...)

	return New(TrendingPage(api, state, rating), opts...)
}

// NewSearch creates the search view for term. Opening it sets the search
// query to the formatted term. The feed resets whenever the tab changes.
func NewSearch(api giphy.API, state *store.State, term string, rating giphy.Rating, opts ...Option) (*Feed, error) {
	if strings.TrimSpace(strings.ReplaceAll(term, "+", " ")) == "" {
		return nil, fmt.Errorf("%w: empty search term", giphy.ErrMissingArgument)
	}

	state.SetSearchQuery(FormatTerm(term))

	opts = append([]Option{WithKey(func() string {
		return state.Tab().String() + "/" + term
	})}, opts...)

	return New(SearchPage(api, state, term, rating), opts...), nil
}
