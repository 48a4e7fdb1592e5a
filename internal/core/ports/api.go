package ports

import (
	"context"

	"github.com/srgjo27/flight_booking/internal/core/domain"
)

type FlightAPI interface {
	SearchFlights(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error)
	GetFlightByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetPopularDestinations(ctx context.Context) ([]domain.Destination, error)
	GetAirports(ctx context.Context) ([]domain.Airport, error)
}

type DestinationAPI interface {
	GetAllDestinations(ctx context.Context) ([]domain.Destination, error)
	GetFeaturedDestinations(ctx context.Context) ([]domain.Destination, error)
	GetDestinationByID(ctx context.Context, id int64) (*domain.Destination, error)
	SearchDestinations(ctx context.Context, query string) ([]domain.Destination, error)
}

type BookingAPI interface {
	GetUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	GetBookingByReference(ctx context.Context, reference, lastName string) (*domain.Booking, error)
	CreateBooking(ctx context.Context, req domain.CreateBookingRequest) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64) error
	CheckIn(ctx context.Context, reference string) (*domain.CheckInResult, error)
}

type UserAPI interface {
	SignIn(ctx context.Context, email, password string) (*domain.User, error)
	SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
}
