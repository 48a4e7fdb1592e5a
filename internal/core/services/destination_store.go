package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/core/domain"
	"github.com/srgjo27/flight_booking/internal/core/ports"
)

const destinationStoreName = "destination"

type SortOption string

const (
	SortByPrice      SortOption = "price"
	SortByName       SortOption = "name"
	SortByPopularity SortOption = "popularity"
)

const AllRegions = "all"

type DestinationStore struct {
	api       ports.DestinationAPI
	favorites ports.FavoriteRepository
	deviceID  string
	bus       *EventBus
	logger    *zap.Logger

	mu                 sync.RWMutex
	destinations       []*domain.Destination
	featured           []*domain.Destination
	searchResults      []*domain.Destination
	currentDestination *domain.Destination
	favoriteIDs        []int64
	searchQuery        string
	regionFilter       string
	sortOption         SortOption
	isLoading          bool
	err                string
}

// NewDestinationStore creates a store whose favorites are persisted for
// deviceID. A nil repository keeps favorites in memory only.
func NewDestinationStore(api ports.DestinationAPI, favorites ports.FavoriteRepository, deviceID string, bus *EventBus, logger *zap.Logger) *DestinationStore {
	return &DestinationStore{
		api:          api,
		favorites:    favorites,
		deviceID:     deviceID,
		bus:          bus,
		logger:       logger.Named(destinationStoreName),
		regionFilter: AllRegions,
		sortOption:   SortByPopularity,
	}
}

func (s *DestinationStore) LoadDestinations(ctx context.Context) bool {
	s.begin()
	destinations, err := s.api.GetAllDestinations(ctx)

	s.mu.Lock()
	if err != nil {
		s.err = errorMessage(err, "Failed to load destinations")
	} else {
		s.destinations = toPointers(destinations)
	}
	s.isLoading = false
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("loading destinations failed", zap.Error(err))
	}
	s.bus.publish(destinationStoreName, "loadDestinations")
	return err == nil
}

func (s *DestinationStore) LoadFeaturedDestinations(ctx context.Context) bool {
	s.begin()
	destinations, err := s.api.GetFeaturedDestinations(ctx)

	s.mu.Lock()
	if err != nil {
		s.err = errorMessage(err, "Failed to load featured destinations")
	} else {
		s.featured = toPointers(destinations)
	}
	s.isLoading = false
	s.mu.Unlock()

	s.bus.publish(destinationStoreName, "loadFeaturedDestinations")
	return err == nil
}

// SearchDestinations runs a server-side search; results are kept apart from
// the catalog so the local filters keep working on the full list.
func (s *DestinationStore) SearchDestinations(ctx context.Context, query string) bool {
	s.begin()
	destinations, err := s.api.SearchDestinations(ctx, query)

	s.mu.Lock()
	if err != nil {
		s.err = errorMessage(err, "Failed to search destinations")
	} else {
		s.searchResults = toPointers(destinations)
	}
	s.isLoading = false
	s.mu.Unlock()

	s.bus.publish(destinationStoreName, "searchDestinations")
	return err == nil
}

// GetDestinationByID returns the cached catalog entry when present, without a
// network call. Fetched entries are not added to the catalog.
func (s *DestinationStore) GetDestinationByID(ctx context.Context, id int64) *domain.Destination {
	s.begin()

	s.mu.Lock()
	for _, d := range s.destinations {
		if d.ID == id {
			s.currentDestination = d
			s.isLoading = false
			s.mu.Unlock()
			s.bus.publish(destinationStoreName, "getDestinationById")
			return d
		}
	}
	s.mu.Unlock()

	destination, err := s.api.GetDestinationByID(ctx, id)

	s.mu.Lock()
	if err != nil {
		s.err = errorMessage(err, "Failed to load destination")
		destination = nil
	} else {
		s.currentDestination = destination
	}
	s.isLoading = false
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("destination lookup failed", zap.Int64("destination_id", id), zap.Error(err))
	}
	s.bus.publish(destinationStoreName, "getDestinationById")
	return destination
}

// LoadFavorites restores the device's favorites from storage.
func (s *DestinationStore) LoadFavorites(ctx context.Context) {
	if s.favorites == nil {
		return
	}

	ids, err := s.favorites.LoadFavorites(ctx, s.deviceID)
	if err != nil {
		s.logger.Warn("loading favorites failed", zap.String("device_id", s.deviceID), zap.Error(err))
		return
	}

	s.mu.Lock()
	s.favoriteIDs = ids
	s.mu.Unlock()
	s.bus.publish(destinationStoreName, "loadFavorites")
}

// ToggleFavoriteDestination flips id in the favorite set and persists the
// whole set before returning. A storage failure is logged; the in-memory
// toggle stands.
func (s *DestinationStore) ToggleFavoriteDestination(ctx context.Context, id int64) bool {
	s.mu.Lock()
	found := -1
	for i, fid := range s.favoriteIDs {
		if fid == id {
			found = i
			break
		}
	}

	next := make([]int64, 0, len(s.favoriteIDs)+1)
	if found >= 0 {
		next = append(next, s.favoriteIDs[:found]...)
		next = append(next, s.favoriteIDs[found+1:]...)
	} else {
		next = append(next, s.favoriteIDs...)
		next = append(next, id)
	}
	s.favoriteIDs = next
	s.mu.Unlock()

	if s.favorites != nil {
		if err := s.favorites.SaveFavorites(ctx, s.deviceID, next); err != nil {
			s.logger.Warn("persisting favorites failed", zap.String("device_id", s.deviceID), zap.Error(err))
		}
	}

	s.bus.publish(destinationStoreName, "toggleFavoriteDestination")
	return found < 0
}

func (s *DestinationStore) SetSearchQuery(query string) {
	s.mu.Lock()
	s.searchQuery = query
	s.mu.Unlock()
	s.bus.publish(destinationStoreName, "setSearchQuery")
}

func (s *DestinationStore) SetRegionFilter(region string) {
	s.mu.Lock()
	s.regionFilter = region
	s.mu.Unlock()
	s.bus.publish(destinationStoreName, "setRegionFilter")
}

func (s *DestinationStore) SetSortOption(option SortOption) {
	s.mu.Lock()
	s.sortOption = option
	s.mu.Unlock()
	s.bus.publish(destinationStoreName, "setSortOption")
}

func (s *DestinationStore) ClearCurrentDestination() {
	s.mu.Lock()
	s.currentDestination = nil
	s.mu.Unlock()
	s.bus.publish(destinationStoreName, "clearCurrentDestination")
}

// FilteredDestinations applies the query, then the region filter, then a
// stable sort. It is recomputed on every call.
func (s *DestinationStore) FilteredDestinations() []*domain.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(s.searchQuery)
	out := make([]*domain.Destination, 0, len(s.destinations))
	for _, d := range s.destinations {
		if query != "" &&
			!strings.Contains(strings.ToLower(d.DisplayCity()), query) &&
			!strings.Contains(strings.ToLower(d.DisplayCountry()), query) {
			continue
		}
		if s.regionFilter != AllRegions && d.Region != s.regionFilter {
			continue
		}
		out = append(out, d)
	}

	switch s.sortOption {
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].DisplayCity()) < strings.ToLower(out[j].DisplayCity())
		})
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	}
	return out
}

func (s *DestinationStore) FavoriteDestinations() []*domain.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fav := make(map[int64]struct{}, len(s.favoriteIDs))
	for _, id := range s.favoriteIDs {
		fav[id] = struct{}{}
	}

	var out []*domain.Destination
	for _, d := range s.destinations {
		if _, ok := fav[d.ID]; ok {
			out = append(out, d)
		}
	}
	return out
}

// UniqueRegions lists "all" followed by each region in catalog order.
func (s *DestinationStore) UniqueRegions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	regions := []string{AllRegions}
	seen := map[string]struct{}{}
	for _, d := range s.destinations {
		if d.Region == "" {
			continue
		}
		if _, ok := seen[d.Region]; ok {
			continue
		}
		seen[d.Region] = struct{}{}
		regions = append(regions, d.Region)
	}
	return regions
}

func (s *DestinationStore) Destinations() []*domain.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Destination, len(s.destinations))
	copy(out, s.destinations)
	return out
}

func (s *DestinationStore) FeaturedDestinations() []*domain.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Destination, len(s.featured))
	copy(out, s.featured)
	return out
}

func (s *DestinationStore) SearchResults() []*domain.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Destination, len(s.searchResults))
	copy(out, s.searchResults)
	return out
}

func (s *DestinationStore) CurrentDestination() *domain.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentDestination
}

func (s *DestinationStore) FavoriteIDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int64, len(s.favoriteIDs))
	copy(out, s.favoriteIDs)
	return out
}

func (s *DestinationStore) IsFavorite(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fid := range s.favoriteIDs {
		if fid == id {
			return true
		}
	}
	return false
}

func (s *DestinationStore) Filters() (query, region string, sortOption SortOption) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery, s.regionFilter, s.sortOption
}

func (s *DestinationStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

func (s *DestinationStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *DestinationStore) begin() {
	s.mu.Lock()
	s.isLoading = true
	s.err = ""
	s.mu.Unlock()
}

func toPointers(in []domain.Destination) []*domain.Destination {
	out := make([]*domain.Destination, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}
