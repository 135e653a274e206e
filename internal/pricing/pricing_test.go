package pricing

import (
	"testing"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlight() *models.Flight {
	return &models.Flight{
		ID: "F1",
		SeatLayout: []models.Row{
			{Seats: []models.Seat{{ID: "1A", SeatNumber: "1A", Price: 500}, {ID: "1B", SeatNumber: "1B", Price: 600}}},
			{Seats: []models.Seat{{ID: "2A", SeatNumber: "2A", Price: 300}}},
		},
	}
}

func TestFindSeat(t *testing.T) {
	flight := testFlight()

	seat, ok := FindSeat(flight, "2A")
	require.True(t, ok)
	assert.Equal(t, 300.0, seat.Price)

	_, ok = FindSeat(flight, "9Z")
	assert.False(t, ok)

	_, ok = FindSeat(nil, "1A")
	assert.False(t, ok)
}

func TestFindSeat_FirstMatchWins(t *testing.T) {
	flight := &models.Flight{
		ID: "F2",
		SeatLayout: []models.Row{
			{Seats: []models.Seat{{ID: "X", Price: 10}}},
			{Seats: []models.Seat{{ID: "X", Price: 99}}},
		},
	}

	seat, ok := FindSeat(flight, "X")
	require.True(t, ok)
	assert.Equal(t, 10.0, seat.Price)
	assert.Equal(t, 10.0, SumPrices(flight, []string{"X"}))
}

func TestSumPrices(t *testing.T) {
	flight := testFlight()

	tests := []struct {
		name     string
		seatIDs  []string
		expected float64
	}{
		{name: "no seats", seatIDs: nil, expected: 0},
		{name: "single seat", seatIDs: []string{"1A"}, expected: 500},
		{name: "two seats", seatIDs: []string{"1A", "1B"}, expected: 1100},
		{name: "across rows", seatIDs: []string{"1B", "2A"}, expected: 900},
		{name: "unknown seat is skipped", seatIDs: []string{"1A", "nope"}, expected: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SumPrices(flight, tt.seatIDs))
		})
	}
}

func TestSeatNumbers(t *testing.T) {
	flight := testFlight()
	assert.Equal(t, []string{"1B", ""}, SeatNumbers(flight, []string{"1B", "zz"}))
}

func TestValidateLayout(t *testing.T) {
	assert.NoError(t, ValidateLayout(testFlight()))

	dup := &models.Flight{
		ID: "F3",
		SeatLayout: []models.Row{
			{Seats: []models.Seat{{ID: "1A"}}},
			{Seats: []models.Seat{{ID: "1A"}}},
		},
	}
	err := ValidateLayout(dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seat 1A")
}
