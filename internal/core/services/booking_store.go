package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/core/domain"
	"github.com/srgjo27/flight_booking/internal/core/ports"
)

const bookingStoreName = "booking"

type BookingPhase string

const (
	PhaseEmpty       BookingPhase = "empty"
	PhaseInitialized BookingPhase = "initialized"
	PhaseInProgress  BookingPhase = "in_progress"
	PhaseSubmitting  BookingPhase = "submitting"
)

var errNotAuthenticated = errors.New("User must be authenticated to view bookings")

var (
	ErrBookingNotLoaded = errors.New("Booking not found")
	ErrBookingDeparted  = errors.New("Flight has already departed")
)

type selectedFlightSource interface {
	SelectedFlight() *domain.Flight
}

type userSource interface {
	User() *domain.User
}

// BookingState is a point-in-time copy of the booking session.
type BookingState struct {
	Phase            BookingPhase              `json:"phase"`
	PassengerDetails []domain.PassengerDetails `json:"passengerDetails"`
	ContactDetails   domain.ContactDetails     `json:"contactDetails"`
	SelectedSeats    domain.SeatAssignments    `json:"selectedSeats"`
	PaymentMethod    string                    `json:"paymentMethod,omitempty"`
	CurrentBooking   *domain.Booking           `json:"currentBooking,omitempty"`
	IsLoading        bool                      `json:"isLoading"`
	Error            string                    `json:"error,omitempty"`
}

type BookingStore struct {
	api      ports.BookingAPI
	flights  selectedFlightSource
	users    userSource
	validate *validator.Validate
	bus      *EventBus
	logger   *zap.Logger
	now      func() time.Time

	mu               sync.RWMutex
	bookings         []domain.Booking
	currentBooking   *domain.Booking
	passengerDetails []domain.PassengerDetails
	contactDetails   domain.ContactDetails
	selectedSeats    domain.SeatAssignments
	paymentMethod    string
	phase            BookingPhase
	isLoading        bool
	err              string
}

func NewBookingStore(api ports.BookingAPI, flights selectedFlightSource, users userSource, validate *validator.Validate, bus *EventBus, logger *zap.Logger) *BookingStore {
	return &BookingStore{
		api:           api,
		flights:       flights,
		users:         users,
		validate:      validate,
		bus:           bus,
		logger:        logger.Named(bookingStoreName),
		now:           time.Now,
		selectedSeats: domain.SeatAssignments{},
		phase:         PhaseEmpty,
	}
}

// InitializeBooking starts a fresh session with passengerCount blank
// passengers. A signed-in user booking alone gets their name and email
// pre-filled; with several passengers nothing is pre-filled.
func (s *BookingStore) InitializeBooking(passengerCount int) {
	if passengerCount < 0 {
		passengerCount = 0
	}
	user := s.users.User()

	s.mu.Lock()
	s.resetLocked()
	s.passengerDetails = make([]domain.PassengerDetails, passengerCount)
	if user != nil && passengerCount == 1 {
		if user.FirstName != "" && user.LastName != "" {
			s.passengerDetails[0].FirstName = user.FirstName
			s.passengerDetails[0].LastName = user.LastName
		}
		s.contactDetails.Email = user.Email
	}
	s.phase = PhaseInitialized
	s.mu.Unlock()

	s.bus.publish(bookingStoreName, "initializeBooking")
}

func (s *BookingStore) AddPassenger(p domain.PassengerDetails) {
	s.mu.Lock()
	s.passengerDetails = append(s.passengerDetails, p)
	s.phase = PhaseInProgress
	s.mu.Unlock()
	s.bus.publish(bookingStoreName, "addPassenger")
}

// UpdatePassenger merges u into the passenger at index. Out of range indexes
// are ignored.
func (s *BookingStore) UpdatePassenger(index int, u domain.PassengerUpdate) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.passengerDetails) {
		s.mu.Unlock()
		return false
	}
	s.passengerDetails[index] = s.passengerDetails[index].Merge(u)
	s.phase = PhaseInProgress
	s.mu.Unlock()

	s.bus.publish(bookingStoreName, "updatePassenger")
	return true
}

func (s *BookingStore) RemovePassenger(index int) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.passengerDetails) {
		s.mu.Unlock()
		return false
	}
	s.passengerDetails = append(s.passengerDetails[:index], s.passengerDetails[index+1:]...)
	s.phase = PhaseInProgress
	s.mu.Unlock()

	s.bus.publish(bookingStoreName, "removePassenger")
	return true
}

func (s *BookingStore) SetContactDetails(email, phone string) {
	s.mu.Lock()
	s.contactDetails = domain.ContactDetails{Email: email, Phone: phone}
	s.phase = PhaseInProgress
	s.mu.Unlock()
	s.bus.publish(bookingStoreName, "setContactDetails")
}

func (s *BookingStore) SetSeat(passengerID, seatNumber string) {
	s.mu.Lock()
	s.selectedSeats[passengerID] = seatNumber
	s.phase = PhaseInProgress
	s.mu.Unlock()
	s.bus.publish(bookingStoreName, "setSeat")
}

func (s *BookingStore) SetPaymentMethod(method string) {
	s.mu.Lock()
	s.paymentMethod = method
	s.phase = PhaseInProgress
	s.mu.Unlock()
	s.bus.publish(bookingStoreName, "setPaymentMethod")
}

// ApplySeatSelection assigns the i-th picked seat to passenger i, keyed by
// the passenger's first name or "passenger-i" when it is blank. The map must
// hold exactly one seat per passenger.
func (s *BookingStore) ApplySeatSelection(seatMap *domain.SeatMap) error {
	if err := seatMap.ValidateSelection(); err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	for i, seatID := range seatMap.SelectedIDs() {
		passengerID := fmt.Sprintf("passenger-%d", i)
		if i < len(s.passengerDetails) && s.passengerDetails[i].FirstName != "" {
			passengerID = s.passengerDetails[i].FirstName
		}
		s.selectedSeats[passengerID] = strconv.Itoa(seatID)
	}
	s.phase = PhaseInProgress
	s.mu.Unlock()

	s.bus.publish(bookingStoreName, "applySeatSelection")
	return nil
}

// ValidateDetails checks every passenger and the contact record before the
// user may leave the passenger step.
func (s *BookingStore) ValidateDetails() error {
	s.mu.RLock()
	passengers := make([]domain.PassengerDetails, len(s.passengerDetails))
	copy(passengers, s.passengerDetails)
	contact := s.contactDetails
	s.mu.RUnlock()

	err := s.validateDetails(passengers, contact)
	if err != nil {
		s.setError(err.Error())
	}
	return err
}

func (s *BookingStore) validateDetails(passengers []domain.PassengerDetails, contact domain.ContactDetails) error {
	for i, p := range passengers {
		if p.FirstName == "" || p.LastName == "" {
			return &domain.ValidationError{Message: fmt.Sprintf("Please enter name for passenger %d", i+1)}
		}
		if err := s.validate.Var(p.DateOfBirth, "required,datetime=2006-01-02"); err != nil {
			return &domain.ValidationError{Message: fmt.Sprintf("Please enter date of birth for passenger %d", i+1)}
		}
	}

	if contact.Email == "" {
		return &domain.ValidationError{Message: "Please provide contact email"}
	}
	if err := s.validate.Var(contact.Email, "email"); err != nil {
		return &domain.ValidationError{Message: "Please provide a valid contact email"}
	}
	if contact.Phone == "" {
		return &domain.ValidationError{Message: "Please provide contact phone number"}
	}
	return nil
}

// CreateBooking submits the session. Without a selected flight it fails
// before any network call. On success the working state is reset; on failure
// it is kept so the user can retry.
func (s *BookingStore) CreateBooking(ctx context.Context) *domain.Booking {
	flight := s.flights.SelectedFlight()
	if flight == nil {
		s.setError(ErrNoFlightSelected.Error())
		return nil
	}
	user := s.users.User()

	s.mu.Lock()
	req := domain.CreateBookingRequest{
		Flight:        flight.ID,
		Passengers:    make([]domain.PassengerDetails, len(s.passengerDetails)),
		ContactEmail:  s.contactDetails.Email,
		ContactPhone:  s.contactDetails.Phone,
		Seats:         make(domain.SeatAssignments, len(s.selectedSeats)),
		PaymentMethod: s.paymentMethod,
	}
	copy(req.Passengers, s.passengerDetails)
	for k, v := range s.selectedSeats {
		req.Seats[k] = v
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = domain.DefaultPaymentMethod
	}
	if user != nil {
		req.User = user.ID
	}
	s.isLoading = true
	s.err = ""
	s.phase = PhaseSubmitting
	s.mu.Unlock()
	s.bus.publish(bookingStoreName, "createBooking.start")

	booking, err := s.api.CreateBooking(ctx, req)

	s.mu.Lock()
	if err != nil {
		s.err = errorMessage(err, "Failed to create booking")
		s.phase = PhaseInProgress
		booking = nil
	} else {
		s.currentBooking = booking
		s.bookings = append([]domain.Booking{*booking}, s.bookings...)
		s.resetLocked()
	}
	s.isLoading = false
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("booking creation failed", zap.Int64("flight_id", flight.ID), zap.Error(err))
	} else {
		s.logger.Info("booking created", zap.Int64("booking_id", booking.ID), zap.String("reference", booking.BookingReference))
	}
	s.bus.publish(bookingStoreName, "createBooking")
	return booking
}

// CancelBooking marks the booking cancelled locally once the API accepts the
// cancellation. The booking stays in the list.
func (s *BookingStore) CancelBooking(ctx context.Context, bookingID int64) bool {
	s.begin()
	err := s.api.CancelBooking(ctx, bookingID)

	s.mu.Lock()
	if err != nil {
		s.err = errorMessage(err, "Failed to cancel booking")
	} else {
		for i := range s.bookings {
			if s.bookings[i].ID == bookingID {
				s.bookings[i].Status = domain.BookingCancelled
			}
		}
		if s.currentBooking != nil && s.currentBooking.ID == bookingID {
			b := *s.currentBooking
			b.Status = domain.BookingCancelled
			s.currentBooking = &b
		}
	}
	s.isLoading = false
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("booking cancellation failed", zap.Int64("booking_id", bookingID), zap.Error(err))
	}
	s.bus.publish(bookingStoreName, "cancelBooking")
	return err == nil
}

// GetUserBookings loads the bookings of userID, or of the signed-in user when
// userID is zero. Without either it fails before any network call.
func (s *BookingStore) GetUserBookings(ctx context.Context, userID int64) bool {
	if userID == 0 {
		if user := s.users.User(); user != nil {
			userID = user.ID
		}
	}
	if userID == 0 {
		s.setError(errNotAuthenticated.Error())
		return false
	}

	s.begin()
	bookings, err := s.api.GetUserBookings(ctx, userID)

	s.mu.Lock()
	if err != nil {
		s.err = errorMessage(err, "Failed to load bookings")
	} else {
		s.bookings = bookings
	}
	s.isLoading = false
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("loading bookings failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	s.bus.publish(bookingStoreName, "getUserBookings")
	return err == nil
}

func (s *BookingStore) GetBookingByReference(ctx context.Context, reference, lastName string) *domain.Booking {
	s.begin()
	booking, err := s.api.GetBookingByReference(ctx, reference, lastName)

	s.mu.Lock()
	if err != nil {
		s.err = errorMessage(err, "Failed to find booking")
		booking = nil
	} else {
		s.currentBooking = booking
	}
	s.isLoading = false
	s.mu.Unlock()

	s.bus.publish(bookingStoreName, "getBookingByReference")
	return booking
}

func (s *BookingStore) CheckIn(ctx context.Context, reference string) *domain.CheckInResult {
	s.begin()
	result, err := s.api.CheckIn(ctx, reference)

	s.mu.Lock()
	if err != nil {
		s.err = errorMessage(err, "Failed to check in")
		result = nil
	} else if result.Booking != nil {
		s.currentBooking = result.Booking
	}
	s.isLoading = false
	s.mu.Unlock()

	if err != nil {
		s.logger.Info("check-in failed", zap.String("reference", reference), zap.Error(err))
	}
	s.bus.publish(bookingStoreName, "checkIn")
	return result
}

// QuoteChange prices moving a loaded booking onto a flight costing newPrice.
// Only bookings already in the list or the current booking can be quoted.
func (s *BookingStore) QuoteChange(bookingID int64, newPrice float64) (domain.ChangeFee, error) {
	now := s.now()

	s.mu.RLock()
	var booking *domain.Booking
	for i := range s.bookings {
		if s.bookings[i].ID == bookingID {
			booking = &s.bookings[i]
			break
		}
	}
	if booking == nil && s.currentBooking != nil && s.currentBooking.ID == bookingID {
		booking = s.currentBooking
	}
	var flight *domain.Flight
	if booking != nil && booking.Flight != nil {
		f := *booking.Flight
		flight = &f
	}
	s.mu.RUnlock()

	if flight == nil {
		return domain.ChangeFee{}, ErrBookingNotLoaded
	}
	if !flight.DepartureTime.After(now) {
		return domain.ChangeFee{}, ErrBookingDeparted
	}

	days := int(flight.DepartureTime.Sub(now) / (24 * time.Hour))
	return domain.CalculateChangeFee(flight.Price, newPrice, days), nil
}

func (s *BookingStore) ResetBookingData() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
	s.bus.publish(bookingStoreName, "resetBookingData")
}

func (s *BookingStore) ClearCurrentBooking() {
	s.mu.Lock()
	s.currentBooking = nil
	s.err = ""
	s.mu.Unlock()
	s.bus.publish(bookingStoreName, "clearCurrentBooking")
}

func (s *BookingStore) resetLocked() {
	s.passengerDetails = []domain.PassengerDetails{}
	s.contactDetails = domain.ContactDetails{}
	s.selectedSeats = domain.SeatAssignments{}
	s.paymentMethod = ""
	s.err = ""
	s.phase = PhaseEmpty
}

// UpcomingBookings and PastBookings split on the flight's departure time
// against the wall clock at each call. Cancelled bookings are not excluded.
func (s *BookingStore) UpcomingBookings() []domain.Booking {
	now := s.now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Booking
	for _, b := range s.bookings {
		if b.Flight != nil && !b.Departed(now) {
			out = append(out, b)
		}
	}
	return out
}

func (s *BookingStore) PastBookings() []domain.Booking {
	now := s.now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Booking
	for _, b := range s.bookings {
		if b.Flight != nil && b.Departed(now) {
			out = append(out, b)
		}
	}
	return out
}

func (s *BookingStore) Bookings() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

func (s *BookingStore) CurrentBooking() *domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentBooking
}

func (s *BookingStore) PassengerDetails() []domain.PassengerDetails {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PassengerDetails, len(s.passengerDetails))
	copy(out, s.passengerDetails)
	return out
}

func (s *BookingStore) ContactDetails() domain.ContactDetails {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contactDetails
}

func (s *BookingStore) SelectedSeats() domain.SeatAssignments {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.SeatAssignments, len(s.selectedSeats))
	for k, v := range s.selectedSeats {
		out[k] = v
	}
	return out
}

func (s *BookingStore) PaymentMethod() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paymentMethod
}

func (s *BookingStore) Phase() BookingPhase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *BookingStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

func (s *BookingStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *BookingStore) State() BookingState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := BookingState{
		Phase:            s.phase,
		PassengerDetails: make([]domain.PassengerDetails, len(s.passengerDetails)),
		ContactDetails:   s.contactDetails,
		SelectedSeats:    make(domain.SeatAssignments, len(s.selectedSeats)),
		PaymentMethod:    s.paymentMethod,
		CurrentBooking:   s.currentBooking,
		IsLoading:        s.isLoading,
		Error:            s.err,
	}
	copy(st.PassengerDetails, s.passengerDetails)
	for k, v := range s.selectedSeats {
		st.SelectedSeats[k] = v
	}
	return st
}

func (s *BookingStore) begin() {
	s.mu.Lock()
	s.isLoading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *BookingStore) setError(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
	s.bus.publish(bookingStoreName, "error")
}
