package catalog

import (
	"context"
	"testing"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSample_ValidLayouts(t *testing.T) {
	src, err := NewSample()
	require.NoError(t, err)

	flights, err := src.ListFlights(context.Background())
	require.NoError(t, err)
	require.Len(t, flights, len(SampleFlights()))
	assert.Equal(t, "FL001", flights[0].ID)
	assert.Equal(t, "FL005", flights[len(flights)-1].ID)
}

func TestNewMemory_RejectsDuplicateSeats(t *testing.T) {
	flights := []models.Flight{{
		ID: "BAD",
		SeatLayout: []models.Row{
			{Seats: []models.Seat{{ID: "1A"}}},
			{Seats: []models.Seat{{ID: "1A"}}},
		},
	}}

	_, err := NewMemory(flights, nil)
	assert.Error(t, err)
}

func TestMemory_GetFlight(t *testing.T) {
	src, err := NewSample()
	require.NoError(t, err)
	ctx := context.Background()

	f, err := src.GetFlight(ctx, "FL003")
	require.NoError(t, err)
	assert.Equal(t, "SA310", f.FlightNumber)
	assert.Len(t, f.SeatLayout, 10)

	_, err = src.GetFlight(ctx, "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	src, err := NewSample()
	require.NoError(t, err)
	ctx := context.Background()

	flights, err := src.ListFlights(ctx)
	require.NoError(t, err)
	flights[0].Departure = "Nowhere"
	flights[0].SeatLayout[0].Seats[0].Price = 1

	again, err := src.GetFlight(ctx, "FL001")
	require.NoError(t, err)
	assert.Equal(t, "London (LHR)", again.Departure)
	assert.Equal(t, 12500.0, again.SeatLayout[0].Seats[0].Price)
}

func TestMemory_ListBookings(t *testing.T) {
	src, err := NewSample()
	require.NoError(t, err)
	ctx := context.Background()

	userBookings, err := src.ListBookings(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, userBookings, 2)
	for _, b := range userBookings {
		assert.Equal(t, "user-1", b.UserID)
	}

	none, err := src.ListBookings(ctx, "user-unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestBuildLayout(t *testing.T) {
	layout := BuildLayout(3, []string{"A", "B"}, func(row int) float64 { return float64(row * 100) })

	require.Len(t, layout, 3)
	assert.Equal(t, "1A", layout[0].Seats[0].ID)
	assert.Equal(t, "3B", layout[2].Seats[1].SeatNumber)
	assert.Equal(t, 300.0, layout[2].Seats[1].Price)
}

func TestAppendSeat(t *testing.T) {
	var layout []models.Row
	layout = appendSeat(layout, 2, models.Seat{ID: "2A"})
	layout = appendSeat(layout, 1, models.Seat{ID: "1A"})
	layout = appendSeat(layout, 2, models.Seat{ID: "2B"})

	require.Len(t, layout, 2)
	assert.Equal(t, []models.Seat{{ID: "1A"}}, layout[0].Seats)
	assert.Equal(t, []models.Seat{{ID: "2A"}, {ID: "2B"}}, layout[1].Seats)
}
