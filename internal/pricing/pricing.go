// Package pricing resolves seat ids against a flight's seat layout and totals their prices.
package pricing

import (
	"fmt"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
)

// FindSeat scans the layout row by row and returns the first seat with the given id
func FindSeat(flight *models.Flight, seatID string) (models.Seat, bool) {
	if flight == nil {
		return models.Seat{}, false
	}
	for _, row := range flight.SeatLayout {
		for _, seat := range row.Seats {
			if seat.ID == seatID {
				return seat, true
			}
		}
	}
	return models.Seat{}, false
}

// SumPrices totals the price of every seat id. Ids missing from the layout contribute nothing.
func SumPrices(flight *models.Flight, seatIDs []string) float64 {
	var total float64
	for _, id := range seatIDs {
		if seat, ok := FindSeat(flight, id); ok {
			total += seat.Price
		}
	}
	return total
}

// SeatNumbers maps seat ids to their display numbers, using "" for unknown ids
func SeatNumbers(flight *models.Flight, seatIDs []string) []string {
	numbers := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat, _ := FindSeat(flight, id)
		numbers = append(numbers, seat.SeatNumber)
	}
	return numbers
}

// ValidateLayout reports the first seat id that appears more than once in the layout
func ValidateLayout(flight *models.Flight) error {
	seen := make(map[string]int)
	for rowIdx, row := range flight.SeatLayout {
		for _, seat := range row.Seats {
			if prev, dup := seen[seat.ID]; dup {
				return fmt.Errorf("flight %s: seat %s appears in rows %d and %d", flight.ID, seat.ID, prev+1, rowIdx+1)
			}
			seen[seat.ID] = rowIdx
		}
	}
	return nil
}
