package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/core/domain"
	"github.com/srgjo27/flight_booking/internal/core/ports/mocks"
	"github.com/srgjo27/flight_booking/internal/core/services"
)

func strPtr(s string) *string { return &s }

func newFlightStore(t *testing.T) (*services.FlightStore, *mocks.FlightAPI, *[]services.Event) {
	api := mocks.NewFlightAPI(t)
	bus := services.NewEventBus("s-1")
	var events []services.Event
	bus.Subscribe(func(e services.Event) { events = append(events, e) })
	return services.NewFlightStore(api, bus, zap.NewNop()), api, &events
}

func TestFlightStore_Defaults(t *testing.T) {
	store, _, _ := newFlightStore(t)

	c := store.SearchCriteria()
	assert.Equal(t, 1, c.Passengers)
	assert.Equal(t, domain.CabinEconomy, c.CabinClass)
	assert.Empty(t, c.From)
	assert.Nil(t, c.DepartureDate)
	assert.Nil(t, store.SelectedFlight())
	assert.False(t, store.IsSearching())
	assert.Empty(t, store.SearchError())
}

func TestFlightStore_SearchFlights_Success(t *testing.T) {
	store, api, events := newFlightStore(t)
	ctx := context.Background()
	departure := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	store.SetDepartureLocation("JFK")
	store.SetArrivalLocation("LHR")
	store.SetDepartureDate(&departure)

	expected := domain.SearchCriteria{
		From:          "JFK",
		To:            "LHR",
		DepartureDate: &departure,
		Passengers:    1,
		CabinClass:    domain.CabinEconomy,
	}
	results := []domain.Flight{
		{ID: 1, FlightNumber: "BA112", From: &domain.Destination{Code: "JFK"}, To: &domain.Destination{Code: "LHR"}},
		{ID: 2, FlightNumber: "VS4", From: &domain.Destination{Code: "JFK"}, To: &domain.Destination{Code: "LHR"}},
	}
	api.On("SearchFlights", ctx, expected).Return(results, nil)

	ok := store.SearchFlights(ctx)

	assert.True(t, ok)
	assert.Equal(t, results, store.Flights())
	assert.False(t, store.IsSearching())
	assert.Empty(t, store.SearchError())

	last := (*events)[len(*events)-1]
	assert.Equal(t, "flight", last.Store)
	assert.Equal(t, "searchFlights", last.Action)
	assert.Equal(t, "s-1", last.SessionID)
}

func TestFlightStore_SearchFlights_FailureKeepsPreviousResults(t *testing.T) {
	store, api, _ := newFlightStore(t)
	ctx := context.Background()
	previous := []domain.Flight{{ID: 7, FlightNumber: "AA100"}}

	api.On("SearchFlights", ctx, mock.Anything).Return(previous, nil).Once()
	assert.True(t, store.SearchFlights(ctx))

	api.On("SearchFlights", ctx, mock.Anything).Return(nil, errors.New("")).Once()
	ok := store.SearchFlights(ctx)

	assert.False(t, ok)
	assert.Equal(t, previous, store.Flights())
	assert.Equal(t, "Failed to search flights", store.SearchError())
	assert.False(t, store.IsSearching())
}

func TestFlightStore_SearchFlights_UsesAPIErrorMessage(t *testing.T) {
	store, api, _ := newFlightStore(t)
	ctx := context.Background()

	api.On("SearchFlights", ctx, mock.Anything).Return(nil, errors.New("Route not served"))

	store.SearchFlights(ctx)

	assert.Equal(t, "Route not served", store.SearchError())
}

func TestFlightStore_GetFlightByID(t *testing.T) {
	store, api, _ := newFlightStore(t)
	ctx := context.Background()
	flight := &domain.Flight{ID: 42, FlightNumber: "LH400", Price: 320}

	api.On("GetFlightByID", ctx, int64(42)).Return(flight, nil).Twice()

	assert.True(t, store.GetFlightByID(ctx, 42))
	assert.True(t, store.GetFlightByID(ctx, 42))
	assert.Equal(t, flight, store.SelectedFlight())

	store.ClearSelectedFlight()
	assert.Nil(t, store.SelectedFlight())
}

func TestFlightStore_GetFlightByID_Failure(t *testing.T) {
	store, api, _ := newFlightStore(t)
	ctx := context.Background()

	api.On("GetFlightByID", ctx, int64(9)).Return(nil, errors.New(""))

	assert.False(t, store.GetFlightByID(ctx, 9))
	assert.Nil(t, store.SelectedFlight())
	assert.Equal(t, "Failed to load flight", store.SearchError())
}

func TestFlightStore_SetSearchCriteria_Partial(t *testing.T) {
	store, _, _ := newFlightStore(t)
	ret := time.Date(2026, 12, 10, 0, 0, 0, 0, time.UTC)
	business := domain.CabinBusiness
	two := 2

	store.SetDepartureLocation("SFO")
	store.SetSearchCriteria(domain.SearchCriteriaUpdate{
		To:         strPtr("NRT"),
		ReturnDate: &ret,
		Passengers: &two,
		CabinClass: &business,
	})

	c := store.SearchCriteria()
	assert.Equal(t, "SFO", c.From)
	assert.Equal(t, "NRT", c.To)
	assert.Equal(t, 2, c.Passengers)
	assert.Equal(t, domain.CabinBusiness, c.CabinClass)
	if assert.NotNil(t, c.ReturnDate) {
		assert.True(t, ret.Equal(*c.ReturnDate))
	}

	store.SetSearchCriteria(domain.SearchCriteriaUpdate{ClearReturnDate: true})
	assert.Nil(t, store.SearchCriteria().ReturnDate)
	assert.Equal(t, "NRT", store.SearchCriteria().To)
}

func TestFlightStore_FilteredFlights(t *testing.T) {
	store, api, _ := newFlightStore(t)
	ctx := context.Background()
	flights := []domain.Flight{
		{ID: 1, From: &domain.Destination{Code: "JFK"}, To: &domain.Destination{Code: "LHR"}},
		{ID: 2, From: &domain.Destination{Code: "JFK"}, To: &domain.Destination{Code: "CDG"}},
		{ID: 3, From: &domain.Destination{Code: "BOS"}, To: &domain.Destination{Code: "LHR"}},
	}
	api.On("SearchFlights", ctx, mock.Anything).Return(flights, nil)
	store.SearchFlights(ctx)

	assert.Len(t, store.FilteredFlights(), 3)

	store.SetDepartureLocation("JFK")
	assert.Len(t, store.FilteredFlights(), 2)

	store.SetArrivalLocation("LHR")
	filtered := store.FilteredFlights()
	if assert.Len(t, filtered, 1) {
		assert.Equal(t, int64(1), filtered[0].ID)
	}
}

func TestFlightStore_LoadPopularDestinationsAndAirports(t *testing.T) {
	store, api, _ := newFlightStore(t)
	ctx := context.Background()

	api.On("GetPopularDestinations", ctx).Return(nil, errors.New("down"))
	api.On("GetAirports", ctx).Return([]domain.Airport{{IATACode: "JFK"}}, nil)

	assert.False(t, store.LoadPopularDestinations(ctx))
	assert.True(t, store.LoadAirports(ctx))

	assert.Empty(t, store.SearchError())
	assert.Empty(t, store.PopularDestinations())
	assert.Len(t, store.Airports(), 1)
	assert.False(t, store.IsLoadingDestinations())
	assert.False(t, store.IsLoadingAirports())
}
