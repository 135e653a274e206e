package models

// Flight represents a scheduled flight and its cabin layout
type Flight struct {
	ID            string `json:"id"`
	FlightNumber  string `json:"flightNumber"`
	Departure     string `json:"departure"`
	Arrival       string `json:"arrival"`
	Date          string `json:"date"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	SeatLayout    []Row  `json:"seatLayout"`
}

// Row is one row of seats in a flight's layout
type Row struct {
	Seats []Seat `json:"seats"`
}

// Seat represents a seat on a flight
type Seat struct {
	ID         string  `json:"id"`
	SeatNumber string  `json:"seatNumber"`
	Price      float64 `json:"price"`
}

// SearchFilters narrows the flight list by departure and arrival
type SearchFilters struct {
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
}
