package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/flight_booking/internal/core/domain"
)

func TestValidateSearchCriteria(t *testing.T) {
	date := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	err := domain.ValidateSearchCriteria(domain.DefaultSearchCriteria())
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Departure location is required", verr.Fields["from"])
	assert.Equal(t, "Arrival location is required", verr.Fields["to"])
	assert.Equal(t, "Departure date is required", verr.Fields["departureDate"])

	same := domain.SearchCriteria{From: "JFK", To: "JFK", DepartureDate: &date, Passengers: 1}
	err = domain.ValidateSearchCriteria(same)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"to": "Departure and arrival locations cannot be the same"}, verr.Fields)

	ok := domain.SearchCriteria{From: "JFK", To: "LHR", DepartureDate: &date, Passengers: 1}
	assert.NoError(t, domain.ValidateSearchCriteria(ok))
}

func TestDestination_DisplayPrefersAirport(t *testing.T) {
	d := &domain.Destination{City: "NYC", Country: "USA"}
	assert.Equal(t, "NYC", d.DisplayCity())

	d.Airport = &domain.Airport{City: "New York", Country: "United States"}
	assert.Equal(t, "New York", d.DisplayCity())
	assert.Equal(t, "United States", d.DisplayCountry())
}

func TestCabinClass_Valid(t *testing.T) {
	assert.True(t, domain.CabinBusiness.Valid())
	assert.False(t, domain.CabinClass("coach").Valid())
}
