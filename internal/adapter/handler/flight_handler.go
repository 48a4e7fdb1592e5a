package handler

import (
	"net/http"

	"github.com/srgjo27/flight_booking/internal/core/domain"
	"github.com/srgjo27/flight_booking/internal/core/services"
)

func (h *Handler) UpdateSearchCriteria(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchCriteriaUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CabinClass != nil && !req.CabinClass.Valid() {
		respondError(w, http.StatusBadRequest, "invalid cabin class")
		return
	}
	if req.Passengers != nil && *req.Passengers < 1 {
		respondError(w, http.StatusBadRequest, "passengers must be at least 1")
		return
	}

	sess := sessionFrom(r)
	sess.Flights.SetSearchCriteria(req)
	respondJSON(w, http.StatusOK, sess.Flights.SearchCriteria())
}

type searchFlightsResponse struct {
	Criteria domain.SearchCriteria `json:"criteria"`
	Flights  []domain.Flight       `json:"flights"`
}

// SearchFlights runs the search with the stored criteria and returns the
// results narrowed to the searched airports.
func (h *Handler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	criteria := sess.Flights.SearchCriteria()
	if err := domain.ValidateSearchCriteria(criteria); err != nil {
		respondValidation(w, err)
		return
	}

	if !sess.Flights.SearchFlights(r.Context()) {
		respondError(w, http.StatusBadGateway, sess.Flights.SearchError())
		return
	}

	flights := sess.Flights.FilteredFlights()
	if flights == nil {
		flights = []domain.Flight{}
	}
	respondJSON(w, http.StatusOK, searchFlightsResponse{Criteria: criteria, Flights: flights})
}

func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	sess := sessionFrom(r)
	if !sess.Flights.GetFlightByID(r.Context(), id) {
		respondError(w, http.StatusBadGateway, sess.Flights.SearchError())
		return
	}

	respondJSON(w, http.StatusOK, sess.Flights.SelectedFlight())
}

func (h *Handler) ClearSelectedFlight(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).Flights.ClearSelectedFlight()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetAirports(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if len(sess.Flights.Airports()) == 0 && !sess.Flights.LoadAirports(r.Context()) {
		respondError(w, http.StatusBadGateway, "Failed to load airports")
		return
	}
	respondJSON(w, http.StatusOK, sess.Flights.Airports())
}

func (h *Handler) GetPopularDestinations(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if len(sess.Flights.PopularDestinations()) == 0 && !sess.Flights.LoadPopularDestinations(r.Context()) {
		respondError(w, http.StatusBadGateway, "Failed to load popular destinations")
		return
	}
	respondJSON(w, http.StatusOK, sess.Flights.PopularDestinations())
}

type destinationListResponse struct {
	Destinations []*domain.Destination `json:"destinations"`
	Favorites    []*domain.Destination `json:"favorites"`
	Regions      []string              `json:"regions"`
	Query        string                `json:"query"`
	Region       string                `json:"region"`
	Sort         services.SortOption   `json:"sort"`
}

// ListDestinations loads the catalog on first use, then applies any of the
// q, region and sort query parameters to the session's filters.
func (h *Handler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	q := r.URL.Query()

	if q.Has("sort") {
		option := services.SortOption(q.Get("sort"))
		switch option {
		case services.SortByPrice, services.SortByName, services.SortByPopularity:
			sess.Destinations.SetSortOption(option)
		default:
			respondError(w, http.StatusBadRequest, "invalid sort option")
			return
		}
	}
	if q.Has("q") {
		sess.Destinations.SetSearchQuery(q.Get("q"))
	}
	if q.Has("region") {
		sess.Destinations.SetRegionFilter(q.Get("region"))
	}

	if len(sess.Destinations.Destinations()) == 0 && !sess.Destinations.LoadDestinations(r.Context()) {
		respondError(w, http.StatusBadGateway, sess.Destinations.Error())
		return
	}

	query, region, sortOption := sess.Destinations.Filters()
	respondJSON(w, http.StatusOK, destinationListResponse{
		Destinations: sess.Destinations.FilteredDestinations(),
		Favorites:    sess.Destinations.FavoriteDestinations(),
		Regions:      sess.Destinations.UniqueRegions(),
		Query:        query,
		Region:       region,
		Sort:         sortOption,
	})
}

func (h *Handler) GetFeaturedDestinations(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if len(sess.Destinations.FeaturedDestinations()) == 0 && !sess.Destinations.LoadFeaturedDestinations(r.Context()) {
		respondError(w, http.StatusBadGateway, sess.Destinations.Error())
		return
	}
	respondJSON(w, http.StatusOK, sess.Destinations.FeaturedDestinations())
}

func (h *Handler) SearchDestinations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	sess := sessionFrom(r)
	if !sess.Destinations.SearchDestinations(r.Context(), query) {
		respondError(w, http.StatusBadGateway, sess.Destinations.Error())
		return
	}
	respondJSON(w, http.StatusOK, sess.Destinations.SearchResults())
}

func (h *Handler) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	sess := sessionFrom(r)
	destination := sess.Destinations.GetDestinationByID(r.Context(), id)
	if destination == nil {
		respondError(w, http.StatusNotFound, sess.Destinations.Error())
		return
	}
	respondJSON(w, http.StatusOK, destination)
}

type favoriteResponse struct {
	DestinationID int64 `json:"destinationId"`
	Favorite      bool  `json:"favorite"`
}

func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	favorite := sessionFrom(r).Destinations.ToggleFavoriteDestination(r.Context(), id)
	respondJSON(w, http.StatusOK, favoriteResponse{DestinationID: id, Favorite: favorite})
}
