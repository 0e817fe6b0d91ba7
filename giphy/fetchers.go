package giphy

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// pageParams applies the shared limit/offset/rating defaults
func pageParams(limit, offset int, rating Rating) (url.Values, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	if rating == "" {
		rating = DefaultRating
	}
	if !rating.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRating, rating)
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("rating", string(rating))
	return params, nil
}

// Search returns a page of results for a keyword. It never fails: on error
// the response is empty and Err reports the cause.
func (c *Client) Search(ctx context.Context, p SearchParams) *GifsResponse {
	if !p.Kind.Valid() {
		return c.emptyGifs("search", fmt.Errorf("%w: %q", ErrInvalidKind, p.Kind))
	}

	params, err := pageParams(p.Limit, p.Offset, p.Rating)
	if err != nil {
		return c.emptyGifs("search", err)
	}
	params.Set("q", p.Query)

	var res GifsResponse
	if err := c.Get(ctx, "/"+p.Kind.String()+"/search", params, &res); err != nil {
		return c.emptyGifs("search", err)
	}
	if res.Data == nil {
		res.Data = []Gif{}
	}

	return &res
}

// Trending returns a page of trending items. It never fails: on error the
// response is empty and Err reports the cause.
func (c *Client) Trending(ctx context.Context, p TrendingParams) *GifsResponse {
	if !p.Kind.Valid() {
		return c.emptyGifs("trending", fmt.Errorf("%w: %q", ErrInvalidKind, p.Kind))
	}

	params, err := pageParams(p.Limit, p.Offset, p.Rating)
	if err != nil {
		return c.emptyGifs("trending", err)
	}

	var res GifsResponse
	if err := c.Get(ctx, "/"+p.Kind.String()+"/trending", params, &res); err != nil {
		return c.emptyGifs("trending", err)
	}
	if res.Data == nil {
		res.Data = []Gif{}
	}

	return &res
}

// TrendingSearches returns the currently popular search terms
func (c *Client) TrendingSearches(ctx context.Context) *TermsResponse {
	var res TermsResponse
	if err := c.Get(ctx, "/trending/searches", nil, &res); err != nil {
		c.logFailure("trending searches", err)
		return FailedTerms(err)
	}
	if res.Data == nil {
		res.Data = []string{}
	}

	return &res
}

// Suggestions returns tags related to term
func (c *Client) Suggestions(ctx context.Context, term string) *TagsResponse {
	term = strings.TrimSpace(term)
	if term == "" {
		err := fmt.Errorf("%w: empty term", ErrMissingArgument)
		c.logFailure("suggestions", err)
		return FailedTags(err)
	}

	var res TagsResponse
	if err := c.Get(ctx, "/tags/related/"+url.PathEscape(term), nil, &res); err != nil {
		c.logFailure("suggestions", err)
		return FailedTags(err)
	}
	if res.Data == nil {
		res.Data = []Tag{}
	}

	return &res
}

// GetByID looks up a single GIF. Data is nil when the lookup failed.
func (c *Client) GetByID(ctx context.Context, id string) *GifResponse {
	id = strings.TrimSpace(id)
	if id == "" {
		err := fmt.Errorf("%w: empty id", ErrMissingArgument)
		c.logFailure("gif by id", err)
		return &GifResponse{err: err}
	}

	var res GifResponse
	if err := c.Get(ctx, "/gifs/"+url.PathEscape(id), nil, &res); err != nil {
		c.logFailure("gif by id", err)
		return &GifResponse{err: err}
	}
	if res.Data == nil || res.Data.ID == "" {
		err := fmt.Errorf("%w: no gif in response", ErrInvalidResponse)
		c.logFailure("gif by id", err)
		return &GifResponse{Meta: res.Meta, err: err}
	}

	return &res
}

func (c *Client) emptyGifs(op string, err error) *GifsResponse {
	c.logFailure(op, err)
	return FailedGifs(err)
}

func (c *Client) logFailure(op string, err error) {
	c.logger.Error().
		Err(err).
		Str("op", op).
		Int("status", StatusCode(err)).
		Msg("Failed to fetch data")
}
