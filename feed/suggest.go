package feed

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/gifbox/debounce"
	"github.com/s0up4200/gifbox/giphy"
	"github.com/s0up4200/gifbox/store"
)

// DefaultSuggestDelay is the quiet period before suggestions are fetched
const DefaultSuggestDelay = 500 * time.Millisecond

// Suggester fetches related tags for the search query as it is typed.
// Every Type supersedes the fetch in flight: its request is cancelled and
// its result, if it still arrives, is dropped.
type Suggester struct {
	api       giphy.API
	state     *store.State
	logger    zerolog.Logger
	debouncer *debounce.Debouncer[string]
	notify    func(query string, suggestions []string)

	ctx    context.Context
	cancel context.CancelFunc

	// notifyMu keeps notify calls in the order their results were accepted
	notifyMu sync.Mutex

	mu          sync.Mutex
	suggestions []string
	loading     bool
	gen         uint64
	fetchCancel context.CancelFunc
}

// NewSuggester creates a Suggester. notify, if set, receives every
// non-empty suggestion list, one call at a time. Requests are bound to ctx
// until Close.
func NewSuggester(ctx context.Context, api giphy.API, state *store.State, wait time.Duration, logger zerolog.Logger, notify func(query string, suggestions []string)) *Suggester {
	if wait <= 0 {
		wait = DefaultSuggestDelay
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Suggester{
		api:    api,
		state:  state,
		logger: logger,
		notify: notify,
		ctx:    ctx,
		cancel: cancel,
	}
	s.debouncer = debounce.New(wait, s.fetch)

	return s
}

// Type records query as the search query and schedules a suggestion fetch.
// An empty query clears the suggestions right away.
func (s *Suggester) Type(query string) {
	s.state.SetSearchQuery(query)

	s.mu.Lock()
	s.supersedeLocked()
	if query == "" {
		s.suggestions = nil
	}
	s.mu.Unlock()

	s.debouncer.Call(query)
}

// Flush runs a scheduled fetch now. It reports whether one was pending.
func (s *Suggester) Flush() bool {
	return s.debouncer.Flush()
}

// Wait runs a scheduled fetch now and blocks until no fetch is running
func (s *Suggester) Wait() {
	s.debouncer.Flush()
	s.debouncer.Wait()
}

// Close drops any scheduled fetch and aborts a running one
func (s *Suggester) Close() {
	s.debouncer.Cancel()
	s.mu.Lock()
	s.supersedeLocked()
	s.mu.Unlock()
	s.cancel()
}

// Suggestions returns the latest suggestion list
func (s *Suggester) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.suggestions)
}

// Loading reports whether a fetch is running
func (s *Suggester) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// supersedeLocked invalidates the fetch in flight. Caller holds mu.
func (s *Suggester) supersedeLocked() {
	s.gen++
	if s.fetchCancel != nil {
		s.fetchCancel()
		s.fetchCancel = nil
	}
	s.loading = false
}

func (s *Suggester) fetch(query string) {
	s.mu.Lock()
	s.supersedeLocked()
	if query == "" {
		s.suggestions = nil
		s.mu.Unlock()
		return
	}
	gen := s.gen
	ctx, cancel := context.WithCancel(s.ctx)
	s.fetchCancel = cancel
	s.loading = true
	s.mu.Unlock()
	defer cancel()

	names := s.api.Suggestions(ctx, query).Names()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.logger.Debug().Str("query", query).Msg("Dropping superseded suggestions")
		return
	}
	s.loading = false
	s.fetchCancel = nil
	if len(names) == 0 {
		s.mu.Unlock()
		s.logger.Debug().Str("query", query).Msg("No suggestions")
		return
	}
	s.suggestions = names
	s.mu.Unlock()

	if s.notify != nil {
		s.notify(query, slices.Clone(names))
	}
}
