package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

const DefaultPaymentMethod = "credit_card"

type PassengerDetails struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	DateOfBirth     string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Nationality     string `json:"nationality"`
	PassportNumber  string `json:"passportNumber"`
	SpecialRequests string `json:"specialRequests"`
}

// PassengerUpdate is a partial PassengerDetails; only non-nil fields are merged.
type PassengerUpdate struct {
	FirstName       *string `json:"firstName,omitempty"`
	LastName        *string `json:"lastName,omitempty"`
	DateOfBirth     *string `json:"dateOfBirth,omitempty"`
	Nationality     *string `json:"nationality,omitempty"`
	PassportNumber  *string `json:"passportNumber,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

func (p PassengerDetails) Merge(u PassengerUpdate) PassengerDetails {
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.DateOfBirth != nil {
		p.DateOfBirth = *u.DateOfBirth
	}
	if u.Nationality != nil {
		p.Nationality = *u.Nationality
	}
	if u.PassportNumber != nil {
		p.PassportNumber = *u.PassportNumber
	}
	if u.SpecialRequests != nil {
		p.SpecialRequests = *u.SpecialRequests
	}
	return p
}

type ContactDetails struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// SeatAssignments maps a passenger identifier to a seat id.
type SeatAssignments map[string]string

type Passenger struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	DateOfBirth     string `json:"dateOfBirth"`
	PassportNumber  string `json:"passportNumber"`
	Nationality     string `json:"nationality,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

type Payment struct {
	ID     int64     `json:"id"`
	Amount float64   `json:"amount"`
	Method string    `json:"method"`
	Status string    `json:"status"`
	PaidAt time.Time `json:"paidAt"`
}

type Booking struct {
	ID               int64         `json:"id"`
	BookingReference string        `json:"bookingReference"`
	User             *User         `json:"user,omitempty"`
	Flight           *Flight       `json:"flight"`
	Passengers       []Passenger   `json:"passengers"`
	Payments         []Payment     `json:"payments"`
	Status           BookingStatus `json:"status"`
}

// Departed reports whether the booked flight left at or before now.
func (b *Booking) Departed(now time.Time) bool {
	if b.Flight == nil {
		return false
	}
	return !b.Flight.DepartureTime.After(now)
}

type CreateBookingRequest struct {
	User          int64              `json:"user,omitempty"`
	Flight        int64              `json:"flight"`
	Passengers    []PassengerDetails `json:"passengers"`
	ContactEmail  string             `json:"contactEmail"`
	ContactPhone  string             `json:"contactPhone"`
	Seats         SeatAssignments    `json:"seats"`
	PaymentMethod string             `json:"paymentMethod"`
}

type CheckInResult struct {
	Booking        *Booking `json:"booking,omitempty"`
	BoardingPasses []string `json:"boardingPasses,omitempty"`
	Message        string   `json:"message,omitempty"`
}

type ChangeFee struct {
	ChangeFee       float64 `json:"changeFee"`
	PriceDifference float64 `json:"priceDifference"`
	TotalCost       float64 `json:"totalCost"`
}

func CalculateChangeFee(originalPrice, newPrice float64, daysBeforeDeparture int) ChangeFee {
	fee := 50.0
	if daysBeforeDeparture < 7 {
		fee = 100
	} else if daysBeforeDeparture < 14 {
		fee = 75
	}

	diff := newPrice - originalPrice
	if diff < 0 {
		diff = 0
	}

	return ChangeFee{
		ChangeFee:       fee,
		PriceDifference: diff,
		TotalCost:       fee + diff,
	}
}
