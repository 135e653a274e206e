// Package catalog is the read-only source of flights and booking history.
package catalog

import (
	"context"
	"errors"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
)

var ErrNotFound = errors.New("not found")

// Source serves flights in a stable order and a user's past bookings
type Source interface {
	ListFlights(ctx context.Context) ([]models.Flight, error)
	GetFlight(ctx context.Context, flightID string) (*models.Flight, error)
	ListBookings(ctx context.Context, userID string) ([]models.Booking, error)
}
