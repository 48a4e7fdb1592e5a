package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/core/domain"
	"github.com/srgjo27/flight_booking/internal/core/ports"
)

const flightStoreName = "flight"

// FlightStore owns the search criteria, the result list and the flight the
// user is currently booking.
type FlightStore struct {
	api    ports.FlightAPI
	bus    *EventBus
	logger *zap.Logger

	mu                    sync.RWMutex
	flights               []domain.Flight
	selectedFlight        *domain.Flight
	popularDestinations   []domain.Destination
	airports              []domain.Airport
	criteria              domain.SearchCriteria
	isSearching           bool
	isLoadingDestinations bool
	isLoadingAirports     bool
	searchError           string
}

func NewFlightStore(api ports.FlightAPI, bus *EventBus, logger *zap.Logger) *FlightStore {
	return &FlightStore{
		api:      api,
		bus:      bus,
		logger:   logger.Named(flightStoreName),
		criteria: domain.DefaultSearchCriteria(),
	}
}

// SearchFlights replaces the result list on success. On failure the previous
// results are kept and SearchError is set.
func (s *FlightStore) SearchFlights(ctx context.Context) bool {
	s.mu.Lock()
	s.isSearching = true
	s.searchError = ""
	criteria := s.criteria
	s.mu.Unlock()
	s.bus.publish(flightStoreName, "searchFlights.start")

	flights, err := s.api.SearchFlights(ctx, criteria)

	s.mu.Lock()
	if err != nil {
		s.searchError = errorMessage(err, "Failed to search flights")
	} else {
		s.flights = flights
	}
	s.isSearching = false
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("flight search failed", zap.String("from", criteria.From), zap.String("to", criteria.To), zap.Error(err))
	} else {
		s.logger.Debug("flight search completed", zap.Int("results", len(flights)))
	}
	s.bus.publish(flightStoreName, "searchFlights")
	return err == nil
}

// GetFlightByID always hits the API; prices and availability may change
// between booking steps.
func (s *FlightStore) GetFlightByID(ctx context.Context, id int64) bool {
	s.mu.Lock()
	s.isSearching = true
	s.searchError = ""
	s.mu.Unlock()
	s.bus.publish(flightStoreName, "getFlightById.start")

	flight, err := s.api.GetFlightByID(ctx, id)

	s.mu.Lock()
	if err != nil {
		s.searchError = errorMessage(err, "Failed to load flight")
	} else {
		s.selectedFlight = flight
	}
	s.isSearching = false
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("flight lookup failed", zap.Int64("flight_id", id), zap.Error(err))
	}
	s.bus.publish(flightStoreName, "getFlightById")
	return err == nil
}

func (s *FlightStore) LoadPopularDestinations(ctx context.Context) bool {
	s.mu.Lock()
	s.isLoadingDestinations = true
	s.mu.Unlock()

	destinations, err := s.api.GetPopularDestinations(ctx)

	s.mu.Lock()
	if err == nil {
		s.popularDestinations = destinations
	}
	s.isLoadingDestinations = false
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("loading popular destinations failed", zap.Error(err))
	}
	s.bus.publish(flightStoreName, "loadPopularDestinations")
	return err == nil
}

func (s *FlightStore) LoadAirports(ctx context.Context) bool {
	s.mu.Lock()
	s.isLoadingAirports = true
	s.mu.Unlock()

	airports, err := s.api.GetAirports(ctx)

	s.mu.Lock()
	if err == nil {
		s.airports = airports
	}
	s.isLoadingAirports = false
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("loading airports failed", zap.Error(err))
	}
	s.bus.publish(flightStoreName, "loadAirports")
	return err == nil
}

func (s *FlightStore) ClearSelectedFlight() {
	s.mu.Lock()
	s.selectedFlight = nil
	s.searchError = ""
	s.mu.Unlock()
	s.bus.publish(flightStoreName, "clearSelectedFlight")
}

func (s *FlightStore) SetSearchCriteria(u domain.SearchCriteriaUpdate) {
	s.mutateCriteria("setSearchCriteria", func(c *domain.SearchCriteria) {
		*c = c.Apply(u)
	})
}

func (s *FlightStore) SetDepartureLocation(code string) {
	s.mutateCriteria("setDepartureLocation", func(c *domain.SearchCriteria) { c.From = code })
}

func (s *FlightStore) SetArrivalLocation(code string) {
	s.mutateCriteria("setArrivalLocation", func(c *domain.SearchCriteria) { c.To = code })
}

func (s *FlightStore) SetDepartureDate(date *time.Time) {
	s.mutateCriteria("setDepartureDate", func(c *domain.SearchCriteria) { c.DepartureDate = date })
}

func (s *FlightStore) SetReturnDate(date *time.Time) {
	s.mutateCriteria("setReturnDate", func(c *domain.SearchCriteria) { c.ReturnDate = date })
}

func (s *FlightStore) SetPassengers(n int) {
	s.mutateCriteria("setPassengers", func(c *domain.SearchCriteria) { c.Passengers = n })
}

func (s *FlightStore) SetCabinClass(class domain.CabinClass) {
	s.mutateCriteria("setCabinClass", func(c *domain.SearchCriteria) { c.CabinClass = class })
}

func (s *FlightStore) mutateCriteria(action string, fn func(c *domain.SearchCriteria)) {
	s.mu.Lock()
	fn(&s.criteria)
	s.mu.Unlock()
	s.bus.publish(flightStoreName, action)
}

func (s *FlightStore) SearchCriteria() domain.SearchCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

func (s *FlightStore) Flights() []domain.Flight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Flight, len(s.flights))
	copy(out, s.flights)
	return out
}

// FilteredFlights narrows the results to the criteria's airport codes.
func (s *FlightStore) FilteredFlights() []domain.Flight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Flight
	for _, f := range s.flights {
		if s.criteria.From != "" && (f.From == nil || f.From.Code != s.criteria.From) {
			continue
		}
		if s.criteria.To != "" && (f.To == nil || f.To.Code != s.criteria.To) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (s *FlightStore) SelectedFlight() *domain.Flight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedFlight
}

func (s *FlightStore) PopularDestinations() []domain.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Destination, len(s.popularDestinations))
	copy(out, s.popularDestinations)
	return out
}

func (s *FlightStore) Airports() []domain.Airport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Airport, len(s.airports))
	copy(out, s.airports)
	return out
}

func (s *FlightStore) IsSearching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSearching
}

func (s *FlightStore) IsLoadingDestinations() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoadingDestinations
}

func (s *FlightStore) IsLoadingAirports() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoadingAirports
}

// SearchError is empty when the last search or lookup succeeded.
func (s *FlightStore) SearchError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchError
}
