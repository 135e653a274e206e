package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres reads flights and bookings from the catalog tables
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// --- Flight Operations ---

// ListFlights returns every flight with its seat layout, ordered by schedule
func (p *Postgres) ListFlights(ctx context.Context) ([]models.Flight, error) {
	query := `
		SELECT id, flight_number, departure, arrival, flight_date, departure_time, arrival_time
		FROM flights
		ORDER BY flight_date, departure_time, id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer rows.Close()

	var flights []models.Flight
	index := make(map[string]int)
	for rows.Next() {
		var f models.Flight
		if err := rows.Scan(
			&f.ID, &f.FlightNumber, &f.Departure, &f.Arrival,
			&f.Date, &f.DepartureTime, &f.ArrivalTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		index[f.ID] = len(flights)
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate flights: %w", err)
	}
	if len(flights) == 0 {
		return flights, nil
	}

	seatRows, err := p.pool.Query(ctx, `
		SELECT flight_id, row_number, seat_id, seat_number, price
		FROM seats
		ORDER BY flight_id, row_number, position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query seats: %w", err)
	}
	defer seatRows.Close()

	for seatRows.Next() {
		var (
			flightID string
			rowNum   int
			s        models.Seat
		)
		if err := seatRows.Scan(&flightID, &rowNum, &s.ID, &s.SeatNumber, &s.Price); err != nil {
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		i, ok := index[flightID]
		if !ok {
			continue
		}
		flights[i].SeatLayout = appendSeat(flights[i].SeatLayout, rowNum, s)
	}
	if err := seatRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seats: %w", err)
	}

	return flights, nil
}

// GetFlight returns a flight by ID with its seat layout
func (p *Postgres) GetFlight(ctx context.Context, flightID string) (*models.Flight, error) {
	query := `
		SELECT id, flight_number, departure, arrival, flight_date, departure_time, arrival_time
		FROM flights
		WHERE id = $1
	`

	var f models.Flight
	err := p.pool.QueryRow(ctx, query, flightID).Scan(
		&f.ID, &f.FlightNumber, &f.Departure, &f.Arrival,
		&f.Date, &f.DepartureTime, &f.ArrivalTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}

	rows, err := p.pool.Query(ctx, `
		SELECT row_number, seat_id, seat_number, price
		FROM seats
		WHERE flight_id = $1
		ORDER BY row_number, position
	`, flightID)
	if err != nil {
		return nil, fmt.Errorf("failed to query seats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rowNum int
			s      models.Seat
		)
		if err := rows.Scan(&rowNum, &s.ID, &s.SeatNumber, &s.Price); err != nil {
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		f.SeatLayout = appendSeat(f.SeatLayout, rowNum, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seats: %w", err)
	}

	return &f, nil
}

// --- Booking Operations ---

// ListBookings returns a user's bookings, newest first, with seats and passengers
func (p *Postgres) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, flight_id, user_id, total_price, status, booking_date
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.FlightID, &b.UserID, &b.TotalPrice, &b.Status, &b.BookingDate); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	for i := range bookings {
		seats, err := p.bookingSeats(ctx, bookings[i].ID)
		if err != nil {
			return nil, err
		}
		bookings[i].Seats = seats

		passengers, err := p.bookingPassengers(ctx, bookings[i].ID)
		if err != nil {
			return nil, err
		}
		bookings[i].PassengerDetails = passengers
	}

	return bookings, nil
}

func (p *Postgres) bookingSeats(ctx context.Context, bookingID string) ([]string, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT seat_id FROM booking_seats WHERE booking_id = $1 ORDER BY seat_id
	`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking seats: %w", err)
	}
	defer rows.Close()

	seats := make([]string, 0)
	for rows.Next() {
		var seatID string
		if err := rows.Scan(&seatID); err != nil {
			return nil, fmt.Errorf("failed to scan seat id: %w", err)
		}
		seats = append(seats, seatID)
	}
	return seats, rows.Err()
}

func (p *Postgres) bookingPassengers(ctx context.Context, bookingID string) ([]models.Passenger, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT name, age, email, phone
		FROM booking_passengers
		WHERE booking_id = $1
		ORDER BY position
	`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query passengers: %w", err)
	}
	defer rows.Close()

	passengers := make([]models.Passenger, 0)
	for rows.Next() {
		var pd models.Passenger
		if err := rows.Scan(&pd.Name, &pd.Age, &pd.Email, &pd.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan passenger: %w", err)
		}
		passengers = append(passengers, pd)
	}
	return passengers, rows.Err()
}

// appendSeat places s in the row with the given 1-based number, growing the layout as needed
func appendSeat(layout []models.Row, rowNum int, s models.Seat) []models.Row {
	for len(layout) < rowNum {
		layout = append(layout, models.Row{})
	}
	if rowNum < 1 {
		return layout
	}
	layout[rowNum-1].Seats = append(layout[rowNum-1].Seats, s)
	return layout
}

const schema = `
	CREATE TABLE IF NOT EXISTS flights (
		id             TEXT PRIMARY KEY,
		flight_number  TEXT NOT NULL,
		departure      TEXT NOT NULL,
		arrival        TEXT NOT NULL,
		flight_date    TEXT NOT NULL,
		departure_time TEXT NOT NULL,
		arrival_time   TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS seats (
		flight_id   TEXT NOT NULL REFERENCES flights(id),
		row_number  INT NOT NULL,
		position    INT NOT NULL,
		seat_id     TEXT NOT NULL,
		seat_number TEXT NOT NULL,
		price       DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (flight_id, seat_id)
	);
	CREATE TABLE IF NOT EXISTS bookings (
		id           TEXT PRIMARY KEY,
		flight_id    TEXT NOT NULL REFERENCES flights(id),
		user_id      TEXT NOT NULL,
		total_price  DOUBLE PRECISION NOT NULL,
		status       TEXT NOT NULL,
		booking_date TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS booking_seats (
		booking_id TEXT NOT NULL REFERENCES bookings(id),
		seat_id    TEXT NOT NULL,
		PRIMARY KEY (booking_id, seat_id)
	);
	CREATE TABLE IF NOT EXISTS booking_passengers (
		booking_id TEXT NOT NULL REFERENCES bookings(id),
		position   INT NOT NULL,
		name       TEXT NOT NULL,
		age        INT NOT NULL DEFAULT 0,
		email      TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (booking_id, position)
	);
`

// Migrate creates the catalog tables if they do not exist. The seats primary
// key enforces unique seat ids within a flight.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return nil
}

// Seed inserts flights and bookings that are not present yet, in one transaction
func (p *Postgres) Seed(ctx context.Context, flights []models.Flight, bookings []models.Booking) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, f := range flights {
		_, err := tx.Exec(ctx, `
			INSERT INTO flights (id, flight_number, departure, arrival, flight_date, departure_time, arrival_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING
		`, f.ID, f.FlightNumber, f.Departure, f.Arrival, f.Date, f.DepartureTime, f.ArrivalTime)
		if err != nil {
			return fmt.Errorf("failed to seed flight %s: %w", f.ID, err)
		}

		for rowNum, row := range f.SeatLayout {
			for pos, s := range row.Seats {
				_, err := tx.Exec(ctx, `
					INSERT INTO seats (flight_id, row_number, position, seat_id, seat_number, price)
					VALUES ($1, $2, $3, $4, $5, $6)
					ON CONFLICT (flight_id, seat_id) DO NOTHING
				`, f.ID, rowNum+1, pos, s.ID, s.SeatNumber, s.Price)
				if err != nil {
					return fmt.Errorf("failed to seed seat %s/%s: %w", f.ID, s.ID, err)
				}
			}
		}
	}

	for _, b := range bookings {
		tag, err := tx.Exec(ctx, `
			INSERT INTO bookings (id, flight_id, user_id, total_price, status, booking_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, b.ID, b.FlightID, b.UserID, b.TotalPrice, string(b.Status), b.BookingDate)
		if err != nil {
			return fmt.Errorf("failed to seed booking %s: %w", b.ID, err)
		}
		if tag.RowsAffected() == 0 {
			continue
		}

		for _, seatID := range b.Seats {
			if _, err := tx.Exec(ctx, `INSERT INTO booking_seats (booking_id, seat_id) VALUES ($1, $2)`, b.ID, seatID); err != nil {
				return fmt.Errorf("failed to seed booking seat: %w", err)
			}
		}
		for pos, pax := range b.PassengerDetails {
			_, err := tx.Exec(ctx, `
				INSERT INTO booking_passengers (booking_id, position, name, age, email, phone)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, b.ID, pos, pax.Name, pax.Age, pax.Email, pax.Phone)
			if err != nil {
				return fmt.Errorf("failed to seed passenger: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}
