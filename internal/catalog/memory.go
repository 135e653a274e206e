package catalog

import (
	"context"
	"fmt"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/cx-tal-miterani/scenic-airways/internal/pricing"
)

// Memory serves fixed flights and bookings. Callers receive copies so the
// fixtures cannot be mutated through them.
type Memory struct {
	flights  []models.Flight
	bookings []models.Booking
}

// NewMemory rejects flights whose layout repeats a seat id
func NewMemory(flights []models.Flight, bookings []models.Booking) (*Memory, error) {
	for i := range flights {
		if err := pricing.ValidateLayout(&flights[i]); err != nil {
			return nil, fmt.Errorf("invalid fixture: %w", err)
		}
	}
	return &Memory{flights: flights, bookings: bookings}, nil
}

func (m *Memory) ListFlights(ctx context.Context) ([]models.Flight, error) {
	out := make([]models.Flight, len(m.flights))
	for i, f := range m.flights {
		out[i] = CopyFlight(f)
	}
	return out, nil
}

func (m *Memory) GetFlight(ctx context.Context, flightID string) (*models.Flight, error) {
	for _, f := range m.flights {
		if f.ID == flightID {
			c := CopyFlight(f)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	out := make([]models.Booking, 0)
	for _, b := range m.bookings {
		if b.UserID != userID {
			continue
		}
		c := b
		c.Seats = append([]string(nil), b.Seats...)
		c.PassengerDetails = append([]models.Passenger(nil), b.PassengerDetails...)
		out = append(out, c)
	}
	return out, nil
}

// CopyFlight returns a flight whose seat layout shares no memory with f
func CopyFlight(f models.Flight) models.Flight {
	out := f
	out.SeatLayout = make([]models.Row, len(f.SeatLayout))
	for i, row := range f.SeatLayout {
		out.SeatLayout[i] = models.Row{Seats: append([]models.Seat(nil), row.Seats...)}
	}
	return out
}
