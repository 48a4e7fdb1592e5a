package domain_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/flight_booking/internal/core/domain"
)

// fixedRand returns the same draw for every seat.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

func allAvailable() []domain.Seat {
	return domain.GenerateSeats(fixedRand(0.9))
}

func TestGenerateSeats_Layout(t *testing.T) {
	seats := domain.GenerateSeats(rand.New(rand.NewSource(1)))

	require.Len(t, seats, 180)
	for i, s := range seats {
		assert.Equal(t, i+1, s.ID)
		assert.Equal(t, i/6+1, s.Row)
		assert.Equal(t, domain.SeatColumns[i%6], s.Column)
		assert.False(t, s.IsSelected)
	}

	tests := []struct {
		row   int
		typ   domain.SeatType
		price float64
	}{
		{1, domain.SeatPremium, 45},
		{5, domain.SeatPremium, 45},
		{6, domain.SeatStandard, 25},
		{10, domain.SeatStandard, 25},
		{11, domain.SeatStandard, 15},
		{15, domain.SeatExit, 30},
		{17, domain.SeatExit, 30},
		{18, domain.SeatStandard, 15},
		{20, domain.SeatStandard, 15},
		{21, domain.SeatStandard, 0},
		{30, domain.SeatStandard, 0},
	}
	for _, tt := range tests {
		s := seats[(tt.row-1)*6]
		assert.Equal(t, tt.typ, s.Type, "row %d", tt.row)
		assert.Equal(t, tt.price, s.Price, "row %d", tt.row)
	}
}

func TestGenerateSeats_AvailabilityThreshold(t *testing.T) {
	for _, s := range domain.GenerateSeats(fixedRand(0.3)) {
		assert.False(t, s.IsAvailable)
	}
	for _, s := range domain.GenerateSeats(fixedRand(0.31)) {
		assert.True(t, s.IsAvailable)
	}
}

func TestGenerateSeats_SeededIsDeterministic(t *testing.T) {
	a := domain.GenerateSeats(rand.New(rand.NewSource(99)))
	b := domain.GenerateSeats(rand.New(rand.NewSource(99)))
	assert.Equal(t, a, b)
}

func TestSeatMap_ToggleRespectsQuota(t *testing.T) {
	m := domain.NewSeatMap(1, allAvailable(), 2)

	assert.True(t, m.Toggle(10))
	assert.True(t, m.Toggle(4))
	assert.False(t, m.CanSelect(5))
	assert.False(t, m.Toggle(5))
	assert.Equal(t, []int{10, 4}, m.SelectedIDs())

	// deselecting is allowed at the cap
	assert.True(t, m.CanSelect(10))
	assert.True(t, m.Toggle(10))
	assert.Equal(t, []int{4}, m.SelectedIDs())
	assert.True(t, m.Toggle(5))
	assert.Equal(t, []int{4, 5}, m.SelectedIDs())
}

func TestSeatMap_ZeroOrNegativeCapSelectsNothing(t *testing.T) {
	for _, maxSeats := range []int{0, -2} {
		m := domain.NewSeatMap(1, allAvailable(), maxSeats)

		for _, s := range allAvailable() {
			assert.False(t, m.Toggle(s.ID))
		}
		assert.Empty(t, m.SelectedIDs())
		assert.Equal(t, 0, m.MaxSeats())
		assert.NoError(t, m.ValidateSelection())
	}
}

func TestSeatMap_UnavailableAndUnknownSeats(t *testing.T) {
	seats := allAvailable()
	seats[2].IsAvailable = false
	m := domain.NewSeatMap(1, seats, 3)

	assert.False(t, m.Toggle(3))
	assert.False(t, m.Toggle(999))
	assert.Empty(t, m.SelectedIDs())

	seat, ok := m.Seat(3)
	require.True(t, ok)
	assert.False(t, seat.IsSelected)
	assert.Equal(t, "1C", seat.Label())
}

func TestSeatMap_Totals(t *testing.T) {
	m := domain.NewSeatMap(1, allAvailable(), 2)

	m.Toggle(1)   // row 1 premium, 45
	m.Toggle(175) // row 30, 0

	assert.Equal(t, 45.0, m.SeatTotal())
	assert.Equal(t, 2*199.0+45, m.TripTotal(199, 2))
}

func TestSeatMap_ValidateSelection(t *testing.T) {
	m := domain.NewSeatMap(1, allAvailable(), 2)
	m.Toggle(7)

	assert.EqualError(t, m.ValidateSelection(), "Please select 2 seats to continue.")

	m.Toggle(8)
	assert.NoError(t, m.ValidateSelection())
}

func TestSeatMap_CloneKeepsOrderAndIsIndependent(t *testing.T) {
	m := domain.NewSeatMap(1, allAvailable(), 3)
	m.Toggle(30)
	m.Toggle(2)

	c := m.Clone()
	m.Toggle(12)

	assert.Equal(t, []int{30, 2}, c.SelectedIDs())
	assert.Equal(t, []int{30, 2, 12}, m.SelectedIDs())
}
