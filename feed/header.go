package feed

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/gifbox/giphy"
	"github.com/s0up4200/gifbox/store"
)

const (
	// stickerOffsetRange bounds the random offset of the header sticker
	stickerOffsetRange = 1000
	// trendingSearchCount is how many trending terms the header keeps
	trendingSearchCount = 5
)

// Header loads the random header sticker and the trending search terms
type Header struct {
	api    giphy.API
	state  *store.State
	logger zerolog.Logger

	mu       sync.Mutex
	rng      *rand.Rand
	trending []string
	err      error
	loading  bool
}

// NewHeader creates a Header. A nil rng is replaced by a time seeded one.
func NewHeader(api giphy.API, state *store.State, logger zerolog.Logger, rng *rand.Rand) *Header {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	return &Header{
		api:    api,
		state:  state,
		logger: logger,
		rng:    rng,
	}
}

// Load fetches whatever is still missing: the header sticker when the store
// has none, and the trending terms when none are loaded. Both run
// concurrently. The returned error is the sticker failure, if any; a failed
// trending terms request is only logged.
func (h *Header) Load(ctx context.Context) error {
	h.mu.Lock()
	h.loading = true
	needTrending := len(h.trending) == 0
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.loading = false
		h.mu.Unlock()
	}()

	g, ctx := errgroup.WithContext(ctx)

	if h.state.HeaderMedia() == "" {
		g.Go(func() error {
			h.loadSticker(ctx)
			return nil
		})
	}

	if needTrending {
		g.Go(func() error {
			h.loadTrending(ctx)
			return nil
		})
	}

	_ = g.Wait()
	return h.Err()
}

func (h *Header) loadSticker(ctx context.Context) {
	h.mu.Lock()
	offset := h.rng.IntN(stickerOffsetRange)
	h.mu.Unlock()

	res := h.api.Trending(ctx, giphy.TrendingParams{
		Kind:   giphy.KindStickers,
		Limit:  1,
		Offset: offset,
		Rating: giphy.RatingG,
	})

	if err := res.Err(); err != nil {
		h.mu.Lock()
		h.err = err
		h.mu.Unlock()
		h.logger.Error().Err(err).Int("offset", offset).Msg("Failed to fetch trending sticker")
		return
	}

	media := res.Media()
	if len(media) == 0 {
		h.logger.Debug().Int("offset", offset).Msg("No sticker at offset, header unchanged")
		return
	}

	h.mu.Lock()
	pick := media[h.rng.IntN(len(media))]
	h.err = nil
	h.mu.Unlock()

	h.state.SetHeaderMedia(pick.Image)
}

func (h *Header) loadTrending(ctx context.Context) {
	res := h.api.TrendingSearches(ctx)
	if err := res.Err(); err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch trending searches")
		return
	}
	if len(res.Data) == 0 {
		return
	}

	terms := res.Data
	if len(terms) > trendingSearchCount {
		terms = terms[:trendingSearchCount]
	}

	h.mu.Lock()
	h.trending = slices.Clone(terms)
	h.mu.Unlock()
}

// TrendingSearches returns up to five trending terms
func (h *Header) TrendingSearches() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.trending)
}

// Err returns the sticker failure of the last Load
func (h *Header) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Loading reports whether a Load is running
func (h *Header) Loading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loading
}
