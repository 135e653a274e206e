package models

import "time"

// Booking represents a confirmed or historical flight booking
type Booking struct {
	ID               string        `json:"id"`
	FlightID         string        `json:"flightId"`
	UserID           string        `json:"userId"`
	Seats            []string      `json:"seats"` // Seat IDs
	PassengerDetails []Passenger   `json:"passengerDetails"`
	TotalPrice       float64       `json:"totalPrice"`
	Status           BookingStatus `json:"status"`
	BookingDate      time.Time     `json:"bookingDate"`
}

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Passenger holds the traveller details captured at confirmation
type Passenger struct {
	Name  string `json:"name"`
	Age   int    `json:"age,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// DashboardState is the step the booking dashboard is on
type DashboardState string

const (
	DashboardStateSearching      DashboardState = "searching"
	DashboardStateSelectingSeats DashboardState = "selecting_seats"
	DashboardStateConfirming     DashboardState = "confirming"
)

// DashboardView is the snapshot of the booking dashboard handed to the presentation layer
type DashboardView struct {
	State          DashboardState `json:"state"`
	Results        []Flight       `json:"results"`
	SelectedFlight *Flight        `json:"selectedFlight,omitempty"`
	SelectedSeats  []string       `json:"selectedSeats"`
	SeatNumbers    []string       `json:"seatNumbers"`
	TotalPrice     float64        `json:"totalPrice"`
}

// ConfirmRequest carries the passenger list for a booking confirmation
type ConfirmRequest struct {
	Passengers []Passenger `json:"passengers"`
}

// SelectFlightRequest picks a flight out of the current search results
type SelectFlightRequest struct {
	FlightID string `json:"flightId"`
}
