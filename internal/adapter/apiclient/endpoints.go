package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/core/domain"
	"github.com/srgjo27/flight_booking/internal/core/ports"
)

func (s *SessionClient) SearchFlights(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	query := url.Values{}
	query.Set("from", criteria.From)
	query.Set("to", criteria.To)
	if criteria.DepartureDate != nil {
		query.Set("departureDate", criteria.DepartureDate.Format(time.RFC3339))
	}
	if criteria.ReturnDate != nil {
		query.Set("returnDate", criteria.ReturnDate.Format(time.RFC3339))
	}
	query.Set("passengers", strconv.Itoa(criteria.Passengers))
	query.Set("cabinClass", string(criteria.CabinClass))

	var flights []domain.Flight
	if err := s.get(ctx, "/flight/search", query, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (s *SessionClient) GetFlightByID(ctx context.Context, id int64) (*domain.Flight, error) {
	var flight domain.Flight
	if err := s.get(ctx, fmt.Sprintf("/flight/%d", id), nil, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (s *SessionClient) GetPopularDestinations(ctx context.Context) ([]domain.Destination, error) {
	var destinations []domain.Destination
	if err := s.get(ctx, "/destinations/popular", nil, &destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (s *SessionClient) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	var airports []domain.Airport
	if err := s.get(ctx, "/airports", nil, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (s *SessionClient) GetAllDestinations(ctx context.Context) ([]domain.Destination, error) {
	var destinations []domain.Destination
	if err := s.get(ctx, "/destinations", nil, &destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (s *SessionClient) GetFeaturedDestinations(ctx context.Context) ([]domain.Destination, error) {
	var destinations []domain.Destination
	if err := s.get(ctx, "/destinations/featured", nil, &destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (s *SessionClient) GetDestinationByID(ctx context.Context, id int64) (*domain.Destination, error) {
	var destination domain.Destination
	if err := s.get(ctx, fmt.Sprintf("/destinations/%d", id), nil, &destination); err != nil {
		return nil, err
	}
	return &destination, nil
}

func (s *SessionClient) SearchDestinations(ctx context.Context, query string) ([]domain.Destination, error) {
	var destinations []domain.Destination
	if err := s.get(ctx, "/destinations/search", url.Values{"query": {query}}, &destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (s *SessionClient) GetUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := s.get(ctx, fmt.Sprintf("/booking/user/%d", userID), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *SessionClient) GetBookingByReference(ctx context.Context, reference, lastName string) (*domain.Booking, error) {
	query := url.Values{"reference": {reference}, "lastName": {lastName}}

	var booking domain.Booking
	if err := s.get(ctx, "/booking/reference", query, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *SessionClient) CreateBooking(ctx context.Context, req domain.CreateBookingRequest) (*domain.Booking, error) {
	var booking domain.Booking
	if err := s.post(ctx, "/booking", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *SessionClient) CancelBooking(ctx context.Context, bookingID int64) error {
	return s.post(ctx, fmt.Sprintf("/booking/%d/cancel", bookingID), nil, nil)
}

// CheckIn returns the checked-in booking; the backend sends no boarding
// passes of its own.
func (s *SessionClient) CheckIn(ctx context.Context, reference string) (*domain.CheckInResult, error) {
	var booking domain.Booking
	body := map[string]string{"bookingReference": reference}
	if err := s.post(ctx, "/booking/checkin", body, &booking); err != nil {
		return nil, err
	}
	return &domain.CheckInResult{Booking: &booking}, nil
}

func (s *SessionClient) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	var resp domain.AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := s.post(ctx, "/auth/signIn", body, &resp); err != nil {
		return nil, err
	}
	return s.authenticated(ctx, resp)
}

func (s *SessionClient) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.User, error) {
	var resp domain.AuthResponse
	if err := s.post(ctx, "/auth/signUp", req, &resp); err != nil {
		return nil, err
	}
	return s.authenticated(ctx, resp)
}

func (s *SessionClient) authenticated(ctx context.Context, resp domain.AuthResponse) (*domain.User, error) {
	if resp.User == nil {
		return nil, errors.New("authentication response carried no user")
	}
	if err := s.storeToken(ctx, resp.AccessToken); err != nil {
		if !errors.Is(err, ports.ErrTokenExpired) {
			return nil, err
		}
		s.client.logger.Warn("backend issued an expired access token", zap.String("session_id", s.sessionID), zap.Int64("user_id", resp.User.ID))
	}
	return resp.User, nil
}

func (s *SessionClient) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := s.get(ctx, fmt.Sprintf("/user/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
