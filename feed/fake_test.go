package feed

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/gifbox/giphy"
	"github.com/s0up4200/gifbox/storage"
	"github.com/s0up4200/gifbox/store"
)

// fakeAPI records every request and answers from the configured funcs
type fakeAPI struct {
	mu sync.Mutex

	search   func(giphy.SearchParams) *giphy.GifsResponse
	trending func(giphy.TrendingParams) *giphy.GifsResponse
	suggest  func(string) *giphy.TagsResponse
	terms    func() *giphy.TermsResponse

	searches     []giphy.SearchParams
	trends       []giphy.TrendingParams
	suggestCalls []string
	termCalls    int
}

func (f *fakeAPI) Search(_ context.Context, p giphy.SearchParams) *giphy.GifsResponse {
	f.mu.Lock()
	f.searches = append(f.searches, p)
	fn := f.search
	f.mu.Unlock()
	if fn == nil {
		return &giphy.GifsResponse{Data: []giphy.Gif{}}
	}
	return fn(p)
}

func (f *fakeAPI) Trending(_ context.Context, p giphy.TrendingParams) *giphy.GifsResponse {
	f.mu.Lock()
	f.trends = append(f.trends, p)
	fn := f.trending
	f.mu.Unlock()
	if fn == nil {
		return &giphy.GifsResponse{Data: []giphy.Gif{}}
	}
	return fn(p)
}

func (f *fakeAPI) Suggestions(_ context.Context, term string) *giphy.TagsResponse {
	f.mu.Lock()
	f.suggestCalls = append(f.suggestCalls, term)
	fn := f.suggest
	f.mu.Unlock()
	if fn == nil {
		return &giphy.TagsResponse{Data: []giphy.Tag{}}
	}
	return fn(term)
}

func (f *fakeAPI) TrendingSearches(context.Context) *giphy.TermsResponse {
	f.mu.Lock()
	f.termCalls++
	fn := f.terms
	f.mu.Unlock()
	if fn == nil {
		return &giphy.TermsResponse{Data: []string{}}
	}
	return fn()
}

func (f *fakeAPI) GetByID(context.Context, string) *giphy.GifResponse {
	return &giphy.GifResponse{}
}

func (f *fakeAPI) trendCalls() []giphy.TrendingParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]giphy.TrendingParams(nil), f.trends...)
}

func (f *fakeAPI) searchCalls() []giphy.SearchParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]giphy.SearchParams(nil), f.searches...)
}

func (f *fakeAPI) suggestions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.suggestCalls...)
}

func newState(t *testing.T) *store.State {
	t.Helper()
	s, err := store.Open(storage.NewMemory(), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func gif(id, slug string) giphy.Gif {
	return giphy.Gif{
		ID:   id,
		Slug: slug,
		URL:  "https://giphy.com/gifs/" + slug,
		Images: giphy.Images{
			DownsizedSmall: giphy.Rendition{MP4: "https://media.giphy.com/" + id + ".mp4"},
		},
	}
}

func page(gifs ...giphy.Gif) *giphy.GifsResponse {
	if gifs == nil {
		gifs = []giphy.Gif{}
	}
	return &giphy.GifsResponse{Data: gifs}
}

func slugs(items []giphy.Media) []string {
	out := make([]string, 0, len(items))
	for _, m := range items {
		out = append(out, m.Slug)
	}
	return out
}
