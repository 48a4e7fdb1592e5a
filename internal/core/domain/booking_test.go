package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/srgjo27/flight_booking/internal/core/domain"
)

func TestCalculateChangeFee(t *testing.T) {
	tests := []struct {
		name     string
		original float64
		newPrice float64
		days     int
		want     domain.ChangeFee
	}{
		{"well ahead, cheaper", 400, 300, 30, domain.ChangeFee{ChangeFee: 50, PriceDifference: 0, TotalCost: 50}},
		{"two weeks out", 400, 450, 14, domain.ChangeFee{ChangeFee: 50, PriceDifference: 50, TotalCost: 100}},
		{"inside two weeks", 400, 450, 13, domain.ChangeFee{ChangeFee: 75, PriceDifference: 50, TotalCost: 125}},
		{"inside a week", 400, 400, 6, domain.ChangeFee{ChangeFee: 100, PriceDifference: 0, TotalCost: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CalculateChangeFee(tt.original, tt.newPrice, tt.days))
		})
	}
}

func TestPassengerDetails_Merge(t *testing.T) {
	name := "Grace"
	p := domain.PassengerDetails{FirstName: "G", LastName: "Hopper", Nationality: "US"}

	got := p.Merge(domain.PassengerUpdate{FirstName: &name})

	assert.Equal(t, "Grace", got.FirstName)
	assert.Equal(t, "Hopper", got.LastName)
	assert.Equal(t, "US", got.Nationality)
}

func TestBooking_Departed(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	past := domain.Booking{Flight: &domain.Flight{DepartureTime: now.Add(-time.Minute)}}
	future := domain.Booking{Flight: &domain.Flight{DepartureTime: now.Add(time.Minute)}}
	noFlight := domain.Booking{}

	assert.True(t, past.Departed(now))
	assert.False(t, future.Departed(now))
	assert.False(t, noFlight.Departed(now))
}
