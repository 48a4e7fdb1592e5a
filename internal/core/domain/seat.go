package domain

import (
	"fmt"
	"math/rand"
)

type SeatType string

const (
	SeatStandard SeatType = "standard"
	SeatPremium  SeatType = "premium"
	SeatExit     SeatType = "exit"
)

const (
	SeatRows            = 30
	seatAvailabilityCut = 0.3
	premiumLastRow      = 5
	exitFirstRow        = 15
	exitLastRow         = 17
	premiumSeatPrice    = 45
	exitSeatPrice       = 30
	forwardSeatPrice    = 25
	midCabinSeatPrice   = 15
	forwardCabinLastRow = 10
	midCabinLastRow     = 20
)

var SeatColumns = []string{"A", "B", "C", "D", "E", "F"}

type Seat struct {
	ID          int      `json:"id"`
	Row         int      `json:"row"`
	Column      string   `json:"column"`
	Type        SeatType `json:"type"`
	Price       float64  `json:"price"`
	IsAvailable bool     `json:"isAvailable"`
	IsSelected  bool     `json:"isSelected"`
}

func (s Seat) Label() string {
	return fmt.Sprintf("%d%s", s.Row, s.Column)
}

func seatTypeForRow(row int) SeatType {
	switch {
	case row <= premiumLastRow:
		return SeatPremium
	case row >= exitFirstRow && row <= exitLastRow:
		return SeatExit
	}
	return SeatStandard
}

func seatPrice(t SeatType, row int) float64 {
	switch {
	case t == SeatPremium:
		return premiumSeatPrice
	case t == SeatExit:
		return exitSeatPrice
	case row <= forwardCabinLastRow:
		return forwardSeatPrice
	case row <= midCabinLastRow:
		return midCabinSeatPrice
	}
	return 0
}

// RandSource is the subset of *rand.Rand GenerateSeats needs.
type RandSource interface {
	Float64() float64
}

type defaultRand struct{}

func (defaultRand) Float64() float64 { return rand.Float64() }

// GenerateSeats builds the 30x6 cabin with ids 1..180 in row-major order.
// Each seat is independently available with 70% probability. A nil rng uses
// the unseeded package source, so every call differs.
func GenerateSeats(rng RandSource) []Seat {
	if rng == nil {
		rng = defaultRand{}
	}

	seats := make([]Seat, 0, SeatRows*len(SeatColumns))
	id := 1
	for row := 1; row <= SeatRows; row++ {
		for _, col := range SeatColumns {
			t := seatTypeForRow(row)
			seats = append(seats, Seat{
				ID:          id,
				Row:         row,
				Column:      col,
				Type:        t,
				Price:       seatPrice(t, row),
				IsAvailable: rng.Float64() > seatAvailabilityCut,
			})
			id++
		}
	}
	return seats
}

// SeatMap tracks selection over a generated cabin. It is not safe for
// concurrent use; the owning session serializes access.
type SeatMap struct {
	FlightID int64
	seats    []Seat
	index    map[int]int
	selected []int
	maxSeats int
}

// NewSeatMap wraps seats with a selection cap of maxSeats. A cap of zero or
// less allows no selection at all.
func NewSeatMap(flightID int64, seats []Seat, maxSeats int) *SeatMap {
	if maxSeats < 0 {
		maxSeats = 0
	}
	m := &SeatMap{
		FlightID: flightID,
		seats:    make([]Seat, len(seats)),
		index:    make(map[int]int, len(seats)),
		maxSeats: maxSeats,
	}
	copy(m.seats, seats)
	for i, s := range m.seats {
		m.index[s.ID] = i
		if s.IsSelected {
			m.selected = append(m.selected, s.ID)
		}
	}
	return m
}

// Clone returns an independent copy that keeps the selection order.
func (m *SeatMap) Clone() *SeatMap {
	c := NewSeatMap(m.FlightID, m.seats, m.maxSeats)
	c.selected = m.SelectedIDs()
	return c
}

func (m *SeatMap) MaxSeats() int {
	return m.maxSeats
}

func (m *SeatMap) Seats() []Seat {
	out := make([]Seat, len(m.seats))
	copy(out, m.seats)
	return out
}

func (m *SeatMap) Seat(id int) (Seat, bool) {
	i, ok := m.index[id]
	if !ok {
		return Seat{}, false
	}
	return m.seats[i], true
}

func (m *SeatMap) CanSelect(id int) bool {
	i, ok := m.index[id]
	if !ok {
		return false
	}
	seat := m.seats[i]
	if !seat.IsAvailable {
		return false
	}
	return seat.IsSelected || len(m.selected) < m.maxSeats
}

// Toggle selects or deselects a seat and reports whether anything changed.
func (m *SeatMap) Toggle(id int) bool {
	if !m.CanSelect(id) {
		return false
	}

	i := m.index[id]
	if m.seats[i].IsSelected {
		m.seats[i].IsSelected = false
		for j, sel := range m.selected {
			if sel == id {
				m.selected = append(m.selected[:j], m.selected[j+1:]...)
				break
			}
		}
		return true
	}

	m.seats[i].IsSelected = true
	m.selected = append(m.selected, id)
	return true
}

// SelectedIDs returns seat ids in the order they were picked.
func (m *SeatMap) SelectedIDs() []int {
	out := make([]int, len(m.selected))
	copy(out, m.selected)
	return out
}

func (m *SeatMap) SeatTotal() float64 {
	var total float64
	for _, id := range m.selected {
		total += m.seats[m.index[id]].Price
	}
	return total
}

func (m *SeatMap) TripTotal(baseFare float64, passengers int) float64 {
	return baseFare*float64(passengers) + m.SeatTotal()
}

func (m *SeatMap) ValidateSelection() error {
	if len(m.selected) != m.maxSeats {
		return &ValidationError{
			Message: fmt.Sprintf("Please select %d seats to continue.", m.maxSeats),
		}
	}
	return nil
}
