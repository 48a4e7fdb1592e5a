package domain

import (
	"time"
)

type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinPremium  CabinClass = "premium"
	CabinBusiness CabinClass = "business"
	CabinFirst    CabinClass = "first"
)

func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomy, CabinPremium, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

type SearchCriteria struct {
	From          string     `json:"from"`
	To            string     `json:"to"`
	DepartureDate *time.Time `json:"departureDate"`
	ReturnDate    *time.Time `json:"returnDate"`
	Passengers    int        `json:"passengers"`
	CabinClass    CabinClass `json:"cabinClass"`
}

func DefaultSearchCriteria() SearchCriteria {
	return SearchCriteria{
		Passengers: 1,
		CabinClass: CabinEconomy,
	}
}

// SearchCriteriaUpdate carries the fields of a partial criteria update. Nil
// fields are left untouched; ClearReturnDate resets a round trip to one-way.
type SearchCriteriaUpdate struct {
	From            *string     `json:"from,omitempty"`
	To              *string     `json:"to,omitempty"`
	DepartureDate   *time.Time  `json:"departureDate,omitempty"`
	ReturnDate      *time.Time  `json:"returnDate,omitempty"`
	ClearReturnDate bool        `json:"clearReturnDate,omitempty"`
	Passengers      *int        `json:"passengers,omitempty"`
	CabinClass      *CabinClass `json:"cabinClass,omitempty"`
}

func (c SearchCriteria) Apply(u SearchCriteriaUpdate) SearchCriteria {
	if u.From != nil {
		c.From = *u.From
	}
	if u.To != nil {
		c.To = *u.To
	}
	if u.DepartureDate != nil {
		d := *u.DepartureDate
		c.DepartureDate = &d
	}
	if u.ReturnDate != nil {
		d := *u.ReturnDate
		c.ReturnDate = &d
	}
	if u.ClearReturnDate {
		c.ReturnDate = nil
	}
	if u.Passengers != nil {
		c.Passengers = *u.Passengers
	}
	if u.CabinClass != nil {
		c.CabinClass = *u.CabinClass
	}
	return c
}

// ValidateSearchCriteria checks the fields a search form must fill before
// the search is submitted. The store itself never calls it.
func ValidateSearchCriteria(c SearchCriteria) error {
	errs := map[string]string{}

	if c.From == "" {
		errs["from"] = "Departure location is required"
	}
	if c.To == "" {
		errs["to"] = "Arrival location is required"
	}
	if c.From != "" && c.From == c.To {
		errs["to"] = "Departure and arrival locations cannot be the same"
	}
	if c.DepartureDate == nil {
		errs["departureDate"] = "Departure date is required"
	}

	if len(errs) > 0 {
		return &ValidationError{Message: "Validation failed", Fields: errs}
	}
	return nil
}

type Airport struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
	IATACode string `json:"iataCode"`
	ICAOCode string `json:"icaoCode"`
	Region   string `json:"region"`
}

type Destination struct {
	ID         int64    `json:"id"`
	City       string   `json:"city"`
	Country    string   `json:"country"`
	Code       string   `json:"code"`
	Airport    *Airport `json:"airport,omitempty"`
	Region     string   `json:"region,omitempty"`
	Price      float64  `json:"price,omitempty"`
	Popularity float64  `json:"popularity,omitempty"`
}

// DisplayCity prefers the airport's city when the catalog entry carries one.
func (d *Destination) DisplayCity() string {
	if d.Airport != nil && d.Airport.City != "" {
		return d.Airport.City
	}
	return d.City
}

func (d *Destination) DisplayCountry() string {
	if d.Airport != nil && d.Airport.Country != "" {
		return d.Airport.Country
	}
	return d.Country
}

type Flight struct {
	ID            int64        `json:"id"`
	FlightNumber  string       `json:"flightNumber"`
	Airline       string       `json:"airline,omitempty"`
	From          *Destination `json:"from"`
	To            *Destination `json:"to"`
	DepartureTime time.Time    `json:"departureTime"`
	ArrivalTime   time.Time    `json:"arrivalTime"`
	Duration      string       `json:"duration,omitempty"`
	Price         float64      `json:"price"`
	Stops         int          `json:"stops"`
	Amenities     []string     `json:"amenities,omitempty"`
	CabinClass    CabinClass   `json:"cabinClass"`
}
