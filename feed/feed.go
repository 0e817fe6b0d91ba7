// Package feed implements the paginated result views (trending and search),
// the header loader and the debounced search suggestions.
package feed

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/gifbox/giphy"
)

// State is the loading state of a Feed
type State int

const (
	// StateIdle means no request is in flight
	StateIdle State = iota
	// StateLoading means a page request is in flight
	StateLoading
	// StateError means the last request failed
	StateError
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var errNilPage = errors.New("page function returned no response")

// PageFunc fetches one page starting at offset
type PageFunc func(ctx context.Context, offset, limit int) *giphy.GifsResponse

// Option configures a Feed
type Option func(*Feed)

// WithLimit sets the page size
func WithLimit(limit int) Option {
	return func(f *Feed) {
		if limit > 0 {
			f.limit = limit
		}
	}
}

// WithKey sets the function identifying what the feed shows. Sync resets the
// feed whenever the key changes.
func WithKey(key func() string) Option {
	return func(f *Feed) {
		f.key = key
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Feed) {
		f.logger = logger
	}
}

// Feed accumulates pages of media behind an offset cursor.
//
// At most one request is in flight. FetchMore is a no-op while loading.
// Reset supersedes the in-flight request: it is cancelled and its result
// dropped.
type Feed struct {
	fetch  PageFunc
	key    func() string
	limit  int
	logger zerolog.Logger

	mu      sync.Mutex
	items   []giphy.Media
	offset  int
	state   State
	err     error
	loaded  bool
	lastKey string
	gen     uint64
	cancel  context.CancelFunc
}

// New creates an empty Feed
func New(fetch PageFunc, opts ...Option) *Feed {
	f := &Feed{
		fetch:  fetch,
		limit:  giphy.DefaultLimit,
		logger: zerolog.Nop(),
		items:  []giphy.Media{},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// FetchMore loads the page at the current cursor and appends its new items.
// It does nothing while a request is in flight. On failure the items and the
// cursor are left as they were and the feed enters StateError; calling
// FetchMore again retries the same page.
func (f *Feed) FetchMore(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateLoading {
		f.mu.Unlock()
		f.logger.Debug().Msg("Fetch skipped, already loading")
		return nil
	}
	return f.loadLocked(ctx, false)
}

// Reset cancels any in-flight request, clears the cursor and the items, then
// loads the first page.
func (f *Feed) Reset(ctx context.Context) error {
	f.mu.Lock()
	f.cancelLocked()
	f.offset = 0
	f.items = []giphy.Media{}
	f.err = nil
	f.state = StateIdle
	f.lastKey = f.currentKey()
	return f.loadLocked(ctx, true)
}

// Sync loads the first page when nothing is loaded yet or the key changed
// since the last load. Otherwise it does nothing.
func (f *Feed) Sync(ctx context.Context) error {
	f.mu.Lock()
	key, last := f.currentKey(), f.lastKey
	unchanged := key == last
	if unchanged && (f.state == StateLoading || (f.loaded && len(f.items) > 0)) {
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	if !unchanged {
		f.logger.Debug().Str("from", last).Str("to", key).Msg("Feed key changed, resetting")
	}
	return f.Reset(ctx)
}

// Close cancels the in-flight request, if any. Its result is dropped.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cancelLocked()
	f.gen++
	if f.state == StateLoading {
		f.state = StateIdle
	}
}

// Items returns a copy of the accumulated items
func (f *Feed) Items() []giphy.Media {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.items)
}

// Offset returns the cursor of the next page
func (f *Feed) Offset() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.offset
}

// Limit returns the page size
func (f *Feed) Limit() int {
	return f.limit
}

// State returns the loading state
func (f *Feed) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the error of the last failed request
func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// loadLocked issues one page request. The caller holds mu; loadLocked
// releases it for the duration of the request. The cursor is read here, at
// request time, so concurrent callers never work from a stale copy.
func (f *Feed) loadLocked(parent context.Context, reset bool) error {
	ctx, cancel := context.WithCancel(parent)
	f.gen++
	gen := f.gen
	f.cancel = cancel
	f.state = StateLoading
	offset, limit := f.offset, f.limit
	f.mu.Unlock()

	res := f.fetch(ctx, offset, limit)
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		f.logger.Debug().Int("offset", offset).Msg("Dropping superseded page")
		return nil
	}
	f.cancel = nil

	var err error
	if res == nil {
		err = errNilPage
	} else {
		err = res.Err()
	}
	if err != nil {
		f.state = StateError
		f.err = err
		f.logger.Warn().Err(err).Int("offset", offset).Msg("Failed to load page")
		return err
	}

	page := res.Media()
	before := len(f.items)
	if reset {
		f.items = MergeBySlug(nil, page)
	} else {
		f.items = MergeBySlug(f.items, page)
	}
	f.offset = offset + limit
	f.state = StateIdle
	f.err = nil
	f.loaded = true

	f.logger.Debug().
		Int("offset", offset).
		Int("fetched", len(page)).
		Int("added", len(f.items)-before).
		Int("total", len(f.items)).
		Msg("Loaded page")

	return nil
}

// cancelLocked aborts the in-flight request. Caller holds mu.
func (f *Feed) cancelLocked() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Feed) currentKey() string {
	if f.key == nil {
		return ""
	}
	return f.key()
}
