package catalog

import (
	"fmt"
	"time"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
)

// BuildLayout generates rows of seats with ids like "1A". priceForRow sets the
// price of every seat in a row.
func BuildLayout(rows int, columns []string, priceForRow func(row int) float64) []models.Row {
	layout := make([]models.Row, 0, rows)
	for row := 1; row <= rows; row++ {
		seats := make([]models.Seat, 0, len(columns))
		for _, col := range columns {
			seatID := fmt.Sprintf("%d%s", row, col)
			seats = append(seats, models.Seat{
				ID:         seatID,
				SeatNumber: seatID,
				Price:      priceForRow(row),
			})
		}
		layout = append(layout, models.Row{Seats: seats})
	}
	return layout
}

// tiered prices the first two rows as premium
func tiered(premium, economy float64) func(int) float64 {
	return func(row int) float64 {
		if row <= 2 {
			return premium
		}
		return economy
	}
}

// SampleFlights is the demo flight list
func SampleFlights() []models.Flight {
	columns := []string{"A", "B", "C", "D"}
	return []models.Flight{
		{
			ID:            "FL001",
			FlightNumber:  "SA101",
			Departure:     "London (LHR)",
			Arrival:       "Paris (CDG)",
			Date:          "2026-11-02",
			DepartureTime: "08:30",
			ArrivalTime:   "10:45",
			SeatLayout:    BuildLayout(8, columns, tiered(12500, 6500)),
		},
		{
			ID:            "FL002",
			FlightNumber:  "SA205",
			Departure:     "London (LGW)",
			Arrival:       "Paris (ORY)",
			Date:          "2026-11-03",
			DepartureTime: "14:10",
			ArrivalTime:   "16:20",
			SeatLayout:    BuildLayout(8, columns, tiered(11000, 5800)),
		},
		{
			ID:            "FL003",
			FlightNumber:  "SA310",
			Departure:     "Delhi (DEL)",
			Arrival:       "Leh (IXL)",
			Date:          "2026-11-05",
			DepartureTime: "06:00",
			ArrivalTime:   "07:25",
			SeatLayout:    BuildLayout(10, columns, tiered(9800, 5200)),
		},
		{
			ID:            "FL004",
			FlightNumber:  "SA412",
			Departure:     "Mumbai (BOM)",
			Arrival:       "Goa (GOX)",
			Date:          "2026-11-06",
			DepartureTime: "18:45",
			ArrivalTime:   "19:55",
			SeatLayout:    BuildLayout(10, columns, tiered(7400, 3900)),
		},
		{
			ID:            "FL005",
			FlightNumber:  "SA518",
			Departure:     "Paris (CDG)",
			Arrival:       "London (LHR)",
			Date:          "2026-11-07",
			DepartureTime: "11:15",
			ArrivalTime:   "11:30",
			SeatLayout:    BuildLayout(8, columns, tiered(12000, 6200)),
		},
	}
}

// SampleBookings is the demo booking history for the mock user accounts
func SampleBookings() []models.Booking {
	return []models.Booking{
		{
			ID:       "SA1730000000000A1B2",
			FlightID: "FL003",
			UserID:   "user-1",
			Seats:    []string{"3A", "3B"},
			PassengerDetails: []models.Passenger{
				{Name: "Riya Sharma", Age: 29, Email: "riya@example.com"},
				{Name: "Kabir Sharma", Age: 31},
			},
			TotalPrice:  10400,
			Status:      models.BookingStatusConfirmed,
			BookingDate: time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:               "SA1730000500000C3D4",
			FlightID:         "FL004",
			UserID:           "user-1",
			Seats:            []string{"1C"},
			PassengerDetails: []models.Passenger{{Name: "Riya Sharma", Age: 29}},
			TotalPrice:       7400,
			Status:           models.BookingStatusPending,
			BookingDate:      time.Date(2026, 10, 9, 16, 30, 0, 0, time.UTC),
		},
		{
			ID:               "SA1730001000000E5F6",
			FlightID:         "FL001",
			UserID:           "admin-1",
			Seats:            []string{"1A"},
			PassengerDetails: []models.Passenger{{Name: "Trilogy Admin"}},
			TotalPrice:       12500,
			Status:           models.BookingStatusConfirmed,
			BookingDate:      time.Date(2026, 9, 20, 8, 0, 0, 0, time.UTC),
		},
	}
}

// NewSample returns a Memory source over the demo fixtures
func NewSample() (*Memory, error) {
	return NewMemory(SampleFlights(), SampleBookings())
}
