// Package queue defines the booking events published to the message broker
// and the RabbitMQ publisher that sends them.
package queue

import (
	"time"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
)

// BookingConfirmedQueue is the durable queue confirmed bookings are published to
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent carries enough of the booking for mailers and
// analytics to act without querying the catalog.
type BookingConfirmedEvent struct {
	BookingID        string   `json:"booking_id"`
	ConfirmationCode string   `json:"confirmation_code"`
	UserID           string   `json:"user_id"`
	FlightID         string   `json:"flight_id"`
	FlightNumber     string   `json:"flight_number"`
	Departure        string   `json:"departure"`
	Arrival          string   `json:"arrival"`
	Date             string   `json:"date"`
	DepartureTime    string   `json:"departure_time"`
	SeatIDs          []string `json:"seat_ids"`
	SeatNumbers      []string `json:"seats"`
	Passengers       []string `json:"passengers"`
	TotalPrice       float64  `json:"total_price"`
	ConfirmedAt      string   `json:"confirmed_at"`
}

// NewBookingConfirmedEvent flattens a confirmation into the wire event
func NewBookingConfirmedEvent(in models.ConfirmationWorkflowInput, confirmationCode string) BookingConfirmedEvent {
	names := make([]string, 0, len(in.Booking.PassengerDetails))
	for _, p := range in.Booking.PassengerDetails {
		names = append(names, p.Name)
	}
	return BookingConfirmedEvent{
		BookingID:        in.Booking.ID,
		ConfirmationCode: confirmationCode,
		UserID:           in.Booking.UserID,
		FlightID:         in.Booking.FlightID,
		FlightNumber:     in.FlightNumber,
		Departure:        in.Departure,
		Arrival:          in.Arrival,
		Date:             in.Date,
		DepartureTime:    in.DepartureTime,
		SeatIDs:          append([]string{}, in.Booking.Seats...),
		SeatNumbers:      append([]string{}, in.SeatNumbers...),
		Passengers:       names,
		TotalPrice:       in.Booking.TotalPrice,
		ConfirmedAt:      in.Booking.BookingDate.UTC().Format(time.RFC3339),
	}
}
