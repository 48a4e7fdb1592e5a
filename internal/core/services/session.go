package services

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/core/domain"
	"github.com/srgjo27/flight_booking/internal/core/ports"
)

var (
	ErrNoFlightSelected = errors.New("No flight selected")
	ErrNoSeatMap        = errors.New("No seat map generated")
)

// Backend bundles the REST operations one session talks to.
type Backend struct {
	Flights      ports.FlightAPI
	Destinations ports.DestinationAPI
	Bookings     ports.BookingAPI
	Users        ports.UserAPI
}

type SessionDeps struct {
	Backend   Backend
	Favorites ports.FavoriteRepository
	Tokens    ports.TokenStore
	Validate  *validator.Validate
	Logger    *zap.Logger
	Rand      domain.RandSource
}

// Session is the root container for one user's stores. Stores are safe for
// concurrent use; the seat map is guarded by the session itself.
type Session struct {
	ID       string
	DeviceID string

	Flights      *FlightStore
	Destinations *DestinationStore
	Bookings     *BookingStore
	Users        *UserStore
	Events       *EventBus

	tokens ports.TokenStore
	rng    domain.RandSource
	logger *zap.Logger

	mu      sync.Mutex
	seatMap *domain.SeatMap
}

func NewSession(id, deviceID string, deps SessionDeps) *Session {
	logger := deps.Logger.With(zap.String("session_id", id))
	validate := deps.Validate
	if validate == nil {
		validate = validator.New()
	}

	bus := NewEventBus(id)
	flights := NewFlightStore(deps.Backend.Flights, bus, logger)
	users := NewUserStore(deps.Backend.Users, validate, bus, logger)

	return &Session{
		ID:           id,
		DeviceID:     deviceID,
		Flights:      flights,
		Destinations: NewDestinationStore(deps.Backend.Destinations, deps.Favorites, deviceID, bus, logger),
		Bookings:     NewBookingStore(deps.Backend.Bookings, flights, users, validate, bus, logger),
		Users:        users,
		Events:       bus,
		tokens:       deps.Tokens,
		rng:          deps.Rand,
		logger:       logger,
	}
}

type SeatMapView struct {
	FlightID    int64         `json:"flightId"`
	MaxSeats    int           `json:"maxSeats"`
	Seats       []domain.Seat `json:"seats"`
	SelectedIDs []int         `json:"selectedIds"`
	SeatTotal   float64       `json:"seatTotal"`
	TripTotal   float64       `json:"tripTotal"`
}

// GenerateSeatMap builds a fresh cabin for the selected flight. The seat cap
// is the searched passenger count.
func (s *Session) GenerateSeatMap() (SeatMapView, error) {
	flight := s.Flights.SelectedFlight()
	if flight == nil {
		return SeatMapView{}, ErrNoFlightSelected
	}

	maxSeats := s.Flights.SearchCriteria().Passengers

	s.mu.Lock()
	s.seatMap = domain.NewSeatMap(flight.ID, domain.GenerateSeats(s.rng), maxSeats)
	view := s.viewLocked(flight.Price)
	s.mu.Unlock()

	s.Events.publish("seatmap", "generate")
	return view, nil
}

func (s *Session) SeatMap() (SeatMapView, bool) {
	price := s.baseFare()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seatMap == nil {
		return SeatMapView{}, false
	}
	return s.viewLocked(price), true
}

// ToggleSeat reports false when the seat cannot be picked, e.g. it is
// occupied or the passenger quota is already used.
func (s *Session) ToggleSeat(seatID int) (SeatMapView, bool, error) {
	price := s.baseFare()

	s.mu.Lock()
	if s.seatMap == nil {
		s.mu.Unlock()
		return SeatMapView{}, false, ErrNoSeatMap
	}
	changed := s.seatMap.Toggle(seatID)
	view := s.viewLocked(price)
	s.mu.Unlock()

	if changed {
		s.Events.publish("seatmap", "toggleSeat")
	}
	return view, changed, nil
}

// ConfirmSeats copies the picked seats into the booking session.
func (s *Session) ConfirmSeats() error {
	s.mu.Lock()
	if s.seatMap == nil {
		s.mu.Unlock()
		return ErrNoSeatMap
	}
	m := s.seatMap.Clone()
	s.mu.Unlock()

	return s.Bookings.ApplySeatSelection(m)
}

// SignOut forgets the user and drops the stored bearer token.
func (s *Session) SignOut(ctx context.Context) {
	s.Users.SignOut()
	if s.tokens == nil {
		return
	}
	if err := s.tokens.ClearToken(ctx, s.ID); err != nil {
		s.logger.Warn("clearing token failed", zap.Error(err))
	}
}

type SessionSnapshot struct {
	ID                 string                `json:"sessionId"`
	User               *domain.User          `json:"user,omitempty"`
	SearchCriteria     domain.SearchCriteria `json:"searchCriteria"`
	Flights            []domain.Flight       `json:"flights"`
	SelectedFlight     *domain.Flight        `json:"selectedFlight,omitempty"`
	SearchError        string                `json:"searchError,omitempty"`
	FavoriteIDs        []int64               `json:"favoriteIds"`
	CurrentDestination *domain.Destination   `json:"currentDestination,omitempty"`
	Booking            BookingState          `json:"booking"`
	UpcomingBookings   []domain.Booking      `json:"upcomingBookings"`
	PastBookings       []domain.Booking      `json:"pastBookings"`
	SeatMap            *SeatMapView          `json:"seatMap,omitempty"`
	UserError          string                `json:"userError,omitempty"`
	DestinationError   string                `json:"destinationError,omitempty"`
}

func (s *Session) Snapshot() SessionSnapshot {
	snap := SessionSnapshot{
		ID:                 s.ID,
		User:               s.Users.User(),
		SearchCriteria:     s.Flights.SearchCriteria(),
		Flights:            s.Flights.Flights(),
		SelectedFlight:     s.Flights.SelectedFlight(),
		SearchError:        s.Flights.SearchError(),
		FavoriteIDs:        s.Destinations.FavoriteIDs(),
		CurrentDestination: s.Destinations.CurrentDestination(),
		Booking:            s.Bookings.State(),
		UpcomingBookings:   s.Bookings.UpcomingBookings(),
		PastBookings:       s.Bookings.PastBookings(),
		UserError:          s.Users.Error(),
		DestinationError:   s.Destinations.Error(),
	}
	if view, ok := s.SeatMap(); ok {
		snap.SeatMap = &view
	}
	return snap
}

func (s *Session) baseFare() float64 {
	if f := s.Flights.SelectedFlight(); f != nil {
		return f.Price
	}
	return 0
}

func (s *Session) viewLocked(baseFare float64) SeatMapView {
	m := s.seatMap
	return SeatMapView{
		FlightID:    m.FlightID,
		MaxSeats:    m.MaxSeats(),
		Seats:       m.Seats(),
		SelectedIDs: m.SelectedIDs(),
		SeatTotal:   m.SeatTotal(),
		TripTotal:   m.TripTotal(baseFare, m.MaxSeats()),
	}
}
