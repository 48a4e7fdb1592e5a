package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/srgjo27/flight_booking/internal/core/domain"
	"github.com/srgjo27/flight_booking/internal/core/services"
)

type initializeBookingRequest struct {
	Passengers int `json:"passengers"`
}

// InitializeBooking starts a booking session sized to the searched passenger
// count. The body is optional; a passengers value that disagrees with the
// search is rejected.
func (h *Handler) InitializeBooking(w http.ResponseWriter, r *http.Request) {
	var req initializeBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sess := sessionFrom(r)
	passengers := sess.Flights.SearchCriteria().Passengers
	if req.Passengers != 0 && req.Passengers != passengers {
		respondValidation(w, &domain.ValidationError{
			Message: "Passenger count must match the search",
			Fields:  map[string]string{"passengers": fmt.Sprintf("must equal %d", passengers)},
		})
		return
	}

	sess.Bookings.InitializeBooking(passengers)
	respondJSON(w, http.StatusOK, sess.Bookings.State())
}

func (h *Handler) ResetBooking(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Bookings.ResetBookingData()
	sess.Bookings.ClearCurrentBooking()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdatePassenger(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid index")
		return
	}

	var req domain.PassengerUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	sess := sessionFrom(r)
	if !sess.Bookings.UpdatePassenger(index, req) {
		respondError(w, http.StatusNotFound, "passenger not found")
		return
	}
	respondJSON(w, http.StatusOK, sess.Bookings.State())
}

func (h *Handler) SetContactDetails(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactDetails
	if !decodeJSON(w, r, &req) {
		return
	}

	sess := sessionFrom(r)
	sess.Bookings.SetContactDetails(req.Email, req.Phone)
	respondJSON(w, http.StatusOK, sess.Bookings.State())
}

type paymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

func (h *Handler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req paymentMethodRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PaymentMethod == "" {
		respondError(w, http.StatusBadRequest, "paymentMethod is required")
		return
	}

	sess := sessionFrom(r)
	sess.Bookings.SetPaymentMethod(req.PaymentMethod)
	respondJSON(w, http.StatusOK, sess.Bookings.State())
}

// SubmitBooking validates the passenger step and creates the booking.
func (h *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess.Flights.SelectedFlight() == nil {
		respondError(w, http.StatusConflict, services.ErrNoFlightSelected.Error())
		return
	}
	if err := sess.Bookings.ValidateDetails(); err != nil {
		respondValidation(w, err)
		return
	}

	booking := sess.Bookings.CreateBooking(r.Context())
	if booking == nil {
		respondError(w, http.StatusBadGateway, sess.Bookings.Error())
		return
	}

	respondJSON(w, http.StatusCreated, booking)
}

func (h *Handler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	view, ok := sessionFrom(r).SeatMap()
	if !ok {
		respondError(w, http.StatusNotFound, services.ErrNoSeatMap.Error())
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) GenerateSeatMap(w http.ResponseWriter, r *http.Request) {
	view, err := sessionFrom(r).GenerateSeatMap()
	if err != nil {
		respondSeatMapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

type toggleSeatResponse struct {
	Changed bool                 `json:"changed"`
	SeatMap services.SeatMapView `json:"seatMap"`
}

func (h *Handler) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	view, changed, err := sessionFrom(r).ToggleSeat(id)
	if err != nil {
		respondSeatMapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toggleSeatResponse{Changed: changed, SeatMap: view})
}

func (h *Handler) ConfirmSeats(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := sess.ConfirmSeats(); err != nil {
		respondSeatMapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess.Bookings.State())
}

func respondSeatMapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNoFlightSelected), errors.Is(err, services.ErrNoSeatMap):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondValidation(w, err)
	}
}

type userBookingsResponse struct {
	Upcoming []domain.Booking `json:"upcoming"`
	Past     []domain.Booking `json:"past"`
}

func (h *Handler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if !sess.Users.IsAuthenticated() {
		respondError(w, http.StatusUnauthorized, "User must be authenticated to view bookings")
		return
	}

	if !sess.Bookings.GetUserBookings(r.Context(), 0) {
		respondError(w, http.StatusBadGateway, sess.Bookings.Error())
		return
	}

	respondJSON(w, http.StatusOK, userBookingsResponse{
		Upcoming: nonNil(sess.Bookings.UpcomingBookings()),
		Past:     nonNil(sess.Bookings.PastBookings()),
	})
}

func (h *Handler) LookupBooking(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("reference")
	lastName := r.URL.Query().Get("lastName")
	if reference == "" || lastName == "" {
		respondError(w, http.StatusBadRequest, "reference and lastName are required")
		return
	}

	sess := sessionFrom(r)
	booking := sess.Bookings.GetBookingByReference(r.Context(), reference, lastName)
	if booking == nil {
		respondError(w, http.StatusNotFound, sess.Bookings.Error())
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

type cancelBookingResponse struct {
	BookingID int64                `json:"bookingId"`
	Status    domain.BookingStatus `json:"status"`
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	sess := sessionFrom(r)
	if !sess.Bookings.CancelBooking(r.Context(), id) {
		respondError(w, http.StatusBadGateway, sess.Bookings.Error())
		return
	}
	respondJSON(w, http.StatusOK, cancelBookingResponse{BookingID: id, Status: domain.BookingCancelled})
}

// QuoteChangeFee prices moving a loaded booking onto a flight that costs
// newPrice.
func (h *Handler) QuoteChangeFee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	newPrice, err := strconv.ParseFloat(r.URL.Query().Get("newPrice"), 64)
	if err != nil || newPrice < 0 || math.IsInf(newPrice, 0) || math.IsNaN(newPrice) {
		respondError(w, http.StatusBadRequest, "newPrice must be a non-negative number")
		return
	}

	quote, err := sessionFrom(r).Bookings.QuoteChange(id, newPrice)
	switch {
	case errors.Is(err, services.ErrBookingNotLoaded):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrBookingDeparted):
		respondError(w, http.StatusConflict, err.Error())
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondJSON(w, http.StatusOK, quote)
	}
}

type checkInRequest struct {
	BookingReference string `json:"bookingReference"`
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.BookingReference == "" {
		respondError(w, http.StatusBadRequest, "bookingReference is required")
		return
	}

	sess := sessionFrom(r)
	result := sess.Bookings.CheckIn(r.Context(), req.BookingReference)
	if result == nil {
		respondError(w, http.StatusBadGateway, sess.Bookings.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func nonNil(b []domain.Booking) []domain.Booking {
	if b == nil {
		return []domain.Booking{}
	}
	return b
}
