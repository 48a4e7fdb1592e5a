package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the gateway routes. Everything under /api/session requires
// the X-Session-ID header.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.Use(corsMiddleware)
	r.Use(requestLogger(h.logger))

	api := r.PathPrefix("/api").Subrouter()
	if h.limiter != nil {
		api.Use(h.limiter.Middleware(h.sessions))
	}

	// Sessions
	api.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions", h.DeleteSession).Methods(http.MethodDelete, http.MethodOptions)

	s := api.PathPrefix("/session").Subrouter()
	s.Use(requireSession(h.sessions))

	s.HandleFunc("", h.GetSession).Methods(http.MethodGet, http.MethodOptions)

	// Auth
	s.HandleFunc("/auth/signin", h.SignIn).Methods(http.MethodPost, http.MethodOptions)
	s.HandleFunc("/auth/signup", h.SignUp).Methods(http.MethodPost, http.MethodOptions)
	s.HandleFunc("/auth/signout", h.SignOut).Methods(http.MethodPost, http.MethodOptions)

	// Flights
	s.HandleFunc("/search", h.UpdateSearchCriteria).Methods(http.MethodPut, http.MethodOptions)
	s.HandleFunc("/search", h.SearchFlights).Methods(http.MethodPost, http.MethodOptions)
	s.HandleFunc("/flights/{id:[0-9]+}", h.GetFlight).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/flight", h.ClearSelectedFlight).Methods(http.MethodDelete, http.MethodOptions)
	s.HandleFunc("/airports", h.GetAirports).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/popular-destinations", h.GetPopularDestinations).Methods(http.MethodGet, http.MethodOptions)

	// Destinations
	s.HandleFunc("/destinations", h.ListDestinations).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/destinations/featured", h.GetFeaturedDestinations).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/destinations/search", h.SearchDestinations).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/destinations/{id:[0-9]+}", h.GetDestination).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/destinations/{id:[0-9]+}/favorite", h.ToggleFavorite).Methods(http.MethodPost, http.MethodOptions)

	// Booking session
	s.HandleFunc("/booking", h.InitializeBooking).Methods(http.MethodPost, http.MethodOptions)
	s.HandleFunc("/booking", h.ResetBooking).Methods(http.MethodDelete, http.MethodOptions)
	s.HandleFunc("/booking/passengers/{index:[0-9]+}", h.UpdatePassenger).Methods(http.MethodPatch, http.MethodOptions)
	s.HandleFunc("/booking/contact", h.SetContactDetails).Methods(http.MethodPut, http.MethodOptions)
	s.HandleFunc("/booking/payment-method", h.SetPaymentMethod).Methods(http.MethodPut, http.MethodOptions)
	s.HandleFunc("/booking/submit", h.SubmitBooking).Methods(http.MethodPost, http.MethodOptions)

	// Seat map
	s.HandleFunc("/seatmap", h.GetSeatMap).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/seatmap", h.GenerateSeatMap).Methods(http.MethodPost, http.MethodOptions)
	s.HandleFunc("/seatmap/seats/{id:[0-9]+}", h.ToggleSeat).Methods(http.MethodPost, http.MethodOptions)
	s.HandleFunc("/seatmap/confirm", h.ConfirmSeats).Methods(http.MethodPost, http.MethodOptions)

	// Existing bookings
	s.HandleFunc("/bookings", h.GetUserBookings).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/bookings/lookup", h.LookupBooking).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/bookings/{id:[0-9]+}/cancel", h.CancelBooking).Methods(http.MethodPost, http.MethodOptions)
	s.HandleFunc("/bookings/{id:[0-9]+}/change-fee", h.QuoteChangeFee).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/checkin", h.CheckIn).Methods(http.MethodPost, http.MethodOptions)

	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
