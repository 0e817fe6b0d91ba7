// Package store holds the application state shared by the views: the
// favourites list, the header sticker, the active search query and the
// active content tab.
package store

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/gifbox/giphy"
)

// FavouritesKey is the storage key holding the JSON encoded favourites
const FavouritesKey = "favourites"

// Storage is the persistence the state writes favourites to
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// State is the application state. Favourite mutations are written through to
// storage before the mutator returns. All methods are safe for concurrent use.
type State struct {
	mu          sync.RWMutex
	storage     Storage
	logger      zerolog.Logger
	favourites  []giphy.Media
	headerMedia string
	searchQuery string
	tab         giphy.Kind
}

// Open creates a State and rehydrates the favourites from storage. A stored
// value that is not valid JSON is logged and replaced by an empty list on the
// next write.
func Open(storage Storage, logger zerolog.Logger) (*State, error) {
	s := &State{
		storage:    storage,
		logger:     logger,
		favourites: []giphy.Media{},
		tab:        giphy.KindGifs,
	}

	raw, ok, err := storage.Get(FavouritesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load favourites: %w", err)
	}
	if !ok {
		return s, nil
	}

	var stored []giphy.Media
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.Warn().Err(err).Msg("Stored favourites are not valid JSON, starting empty")
		return s, nil
	}

	for _, m := range stored {
		if m.ID == "" || s.indexLocked(m.ID) >= 0 {
			continue
		}
		s.favourites = append(s.favourites, m)
	}

	logger.Debug().Int("count", len(s.favourites)).Msg("Loaded favourites")
	return s, nil
}

// Favourites returns a copy of the favourites in insertion order
func (s *State) Favourites() []giphy.Media {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.favourites)
}

// IsFavourite reports whether id is in the favourites
func (s *State) IsFavourite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(id) >= 0
}

// AddFavourite appends m unless an item with the same id is already present.
// It reports whether the list changed.
func (s *State) AddFavourite(m giphy.Media) (bool, error) {
	if m.ID == "" {
		return false, fmt.Errorf("favourite has no id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(m.ID) >= 0 {
		return false, nil
	}

	s.favourites = append(s.favourites, m)
	return true, s.persistLocked()
}

// RemoveFavourite removes the item with id. Removing an absent id leaves the
// list untouched and skips the write. It reports whether the list changed.
func (s *State) RemoveFavourite(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false, nil
	}

	s.favourites = slices.Delete(s.favourites, i, i+1)
	return true, s.persistLocked()
}

// ClearFavourites empties the list and drops the stored key. A missing key
// loads as an empty list.
func (s *State) ClearFavourites() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favourites = []giphy.Media{}
	if err := s.storage.Delete(FavouritesKey); err != nil {
		s.logger.Error().Err(err).Msg("Failed to clear stored favourites")
		return fmt.Errorf("failed to clear favourites: %w", err)
	}

	s.logger.Debug().Msg("Cleared favourites")
	return nil
}

// Tab returns the active content tab
func (s *State) Tab() giphy.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tab
}

// SetTab switches the active content tab
func (s *State) SetTab(tab giphy.Kind) error {
	if !tab.Valid() {
		return fmt.Errorf("%w: %q", giphy.ErrInvalidKind, tab)
	}

	s.mu.Lock()
	s.tab = tab
	s.mu.Unlock()
	return nil
}

// SearchQuery returns the active search query
func (s *State) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// SetSearchQuery replaces the active search query
func (s *State) SetSearchQuery(query string) {
	s.mu.Lock()
	s.searchQuery = query
	s.mu.Unlock()
}

// HeaderMedia returns the header sticker URL, empty until one is loaded
func (s *State) HeaderMedia() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.headerMedia
}

// SetHeaderMedia replaces the header sticker URL
func (s *State) SetHeaderMedia(url string) {
	s.mu.Lock()
	s.headerMedia = url
	s.mu.Unlock()
}

func (s *State) indexLocked(id string) int {
	return slices.IndexFunc(s.favourites, func(m giphy.Media) bool {
		return m.ID == id
	})
}

// persistLocked writes the full favourites list. Caller holds mu.
func (s *State) persistLocked() error {
	data, err := json.Marshal(s.favourites)
	if err != nil {
		return fmt.Errorf("failed to encode favourites: %w", err)
	}

	if err := s.storage.Set(FavouritesKey, string(data)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist favourites")
		return fmt.Errorf("failed to persist favourites: %w", err)
	}

	s.logger.Debug().Int("count", len(s.favourites)).Msg("Persisted favourites")
	return nil
}
