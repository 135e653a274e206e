// Package booking drives the dashboard flow: search, flight selection, seat
// selection, and confirmation of a mock booking.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cx-tal-miterani/scenic-airways/internal/catalog"
	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/cx-tal-miterani/scenic-airways/internal/pricing"
	"github.com/google/uuid"
)

var (
	ErrInvalidState     = errors.New("operation not allowed in current state")
	ErrNoSeatsSelected  = errors.New("at least one seat must be selected")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrPassengerCount   = errors.New("one passenger is required per selected seat")
)

// DefaultNotifyTimeout bounds the confirmation notifier call
const DefaultNotifyTimeout = 5 * time.Second

// SessionProvider exposes the signed-in user
type SessionProvider interface {
	CurrentUser() (models.User, bool)
}

// Notifier is told about every confirmed booking
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking models.Booking, flight models.Flight) error
}

type logNotifier struct{ logger *slog.Logger }

func (n logNotifier) BookingConfirmed(ctx context.Context, b models.Booking, f models.Flight) error {
	n.logger.Info("Booking confirmed", "bookingId", b.ID, "flight", f.FlightNumber, "seats", b.Seats, "total", b.TotalPrice)
	return nil
}

// Workflow is the booking dashboard state machine. It is owned by a single
// caller and is not safe for concurrent use.
type Workflow struct {
	state    models.DashboardState
	results  []models.Flight
	selected *models.Flight
	seats    []string

	catalog  catalog.Source
	session  SessionProvider
	notifier Notifier
	timeout  time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Workflow)

func WithNotifier(n Notifier) Option {
	return func(w *Workflow) { w.notifier = n }
}

func WithNotifyTimeout(d time.Duration) Option {
	return func(w *Workflow) { w.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) { w.logger = logger }
}

// NewWorkflow starts in the searching state with no results
func NewWorkflow(source catalog.Source, session SessionProvider, opts ...Option) *Workflow {
	w := &Workflow{
		state:   models.DashboardStateSearching,
		results: []models.Flight{},
		seats:   []string{},
		catalog: source,
		session: session,
		timeout: DefaultNotifyTimeout,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.notifier == nil {
		w.notifier = logNotifier{logger: w.logger}
	}
	return w
}

func (w *Workflow) State() models.DashboardState {
	return w.state
}

// Search replaces the results with the flights whose departure and arrival
// contain the filter values, ignoring case. Source order is kept.
func (w *Workflow) Search(ctx context.Context, filters models.SearchFilters) ([]models.Flight, error) {
	if w.state != models.DashboardStateSearching {
		return nil, fmt.Errorf("search while %s: %w", w.state, ErrInvalidState)
	}

	flights, err := w.catalog.ListFlights(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}

	dep := strings.ToLower(filters.Departure)
	arr := strings.ToLower(filters.Arrival)
	results := make([]models.Flight, 0, len(flights))
	for _, f := range flights {
		if strings.Contains(strings.ToLower(f.Departure), dep) &&
			strings.Contains(strings.ToLower(f.Arrival), arr) {
			results = append(results, f)
		}
	}

	w.results = results
	w.logger.Debug("Flight search", "departure", filters.Departure, "arrival", filters.Arrival, "matches", len(results))
	return w.Results(), nil
}

// Results returns a copy of the current search results
func (w *Workflow) Results() []models.Flight {
	out := make([]models.Flight, len(w.results))
	for i, f := range w.results {
		out[i] = catalog.CopyFlight(f)
	}
	return out
}

// SelectFlight picks a flight from the current results and starts seat
// selection with nothing chosen. It reports false and changes nothing when
// the flight is not among the results or a confirmation is open.
func (w *Workflow) SelectFlight(flightID string) bool {
	if w.state == models.DashboardStateConfirming {
		return false
	}
	for i := range w.results {
		if w.results[i].ID == flightID {
			f := catalog.CopyFlight(w.results[i])
			w.selected = &f
			w.seats = []string{}
			w.state = models.DashboardStateSelectingSeats
			return true
		}
	}
	return false
}

// SelectedFlight returns the flight being booked, if any
func (w *Workflow) SelectedFlight() (models.Flight, bool) {
	if w.selected == nil {
		return models.Flight{}, false
	}
	return catalog.CopyFlight(*w.selected), true
}

// ToggleSeat removes seatID from the selection if present and appends it otherwise
func (w *Workflow) ToggleSeat(seatID string) error {
	if w.state != models.DashboardStateSelectingSeats {
		return fmt.Errorf("toggle seat while %s: %w", w.state, ErrInvalidState)
	}

	for i, id := range w.seats {
		if id == seatID {
			w.seats = append(w.seats[:i:i], w.seats[i+1:]...)
			return nil
		}
	}
	w.seats = append(w.seats, seatID)
	return nil
}

// SelectedSeats returns the selected seat ids in selection order
func (w *Workflow) SelectedSeats() []string {
	return append([]string{}, w.seats...)
}

// TotalPrice sums the prices of the selected seats on the selected flight
func (w *Workflow) TotalPrice() float64 {
	if w.selected == nil || len(w.seats) == 0 {
		return 0
	}
	return pricing.SumPrices(w.selected, w.seats)
}

// BackToResults drops the selected flight and returns to the search results
func (w *Workflow) BackToResults() error {
	if w.state != models.DashboardStateSelectingSeats {
		return fmt.Errorf("back to results while %s: %w", w.state, ErrInvalidState)
	}
	w.reset()
	return nil
}

// ProceedToConfirm opens the confirmation step
func (w *Workflow) ProceedToConfirm() error {
	if w.state != models.DashboardStateSelectingSeats {
		return fmt.Errorf("continue while %s: %w", w.state, ErrInvalidState)
	}
	if len(w.seats) == 0 {
		return ErrNoSeatsSelected
	}
	w.state = models.DashboardStateConfirming
	return nil
}

// CancelConfirmation abandons the booking and returns to searching. Results are kept.
func (w *Workflow) CancelConfirmation() error {
	if w.state != models.DashboardStateConfirming {
		return fmt.Errorf("cancel while %s: %w", w.state, ErrInvalidState)
	}
	w.reset()
	return nil
}

// Confirm produces a confirmed booking for the selected seats and returns to
// searching. The booking is handed to the notifier and not stored.
func (w *Workflow) Confirm(ctx context.Context, passengers []models.Passenger) (models.Booking, error) {
	if w.state != models.DashboardStateConfirming {
		return models.Booking{}, fmt.Errorf("confirm while %s: %w", w.state, ErrInvalidState)
	}
	if len(w.seats) == 0 {
		return models.Booking{}, ErrNoSeatsSelected
	}
	user, ok := w.session.CurrentUser()
	if !ok {
		return models.Booking{}, ErrNotAuthenticated
	}
	if len(passengers) != len(w.seats) {
		return models.Booking{}, fmt.Errorf("%d passengers for %d seats: %w", len(passengers), len(w.seats), ErrPassengerCount)
	}

	now := w.now().UTC()
	b := models.Booking{
		ID:               newBookingID(now),
		FlightID:         w.selected.ID,
		UserID:           user.ID,
		Seats:            w.SelectedSeats(),
		PassengerDetails: append([]models.Passenger{}, passengers...),
		TotalPrice:       w.TotalPrice(),
		Status:           models.BookingStatusConfirmed,
		BookingDate:      now,
	}
	flight := catalog.CopyFlight(*w.selected)

	nctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.notifier.BookingConfirmed(nctx, b, flight); err != nil {
		w.logger.Warn("Booking confirmation notification failed", "bookingId", b.ID, "error", err)
	}

	w.reset()
	return b, nil
}

// History returns the signed-in user's bookings
func (w *Workflow) History(ctx context.Context) ([]models.Booking, error) {
	user, ok := w.session.CurrentUser()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	bookings, err := w.catalog.ListBookings(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// View snapshots the dashboard for the presentation layer
func (w *Workflow) View() models.DashboardView {
	v := models.DashboardView{
		State:         w.state,
		Results:       w.Results(),
		SelectedSeats: w.SelectedSeats(),
		SeatNumbers:   []string{},
		TotalPrice:    w.TotalPrice(),
	}
	if f, ok := w.SelectedFlight(); ok {
		v.SelectedFlight = &f
		v.SeatNumbers = pricing.SeatNumbers(&f, w.seats)
	}
	return v
}

func (w *Workflow) reset() {
	w.selected = nil
	w.seats = []string{}
	w.state = models.DashboardStateSearching
}

// newBookingID builds ids like SA1730000000000A1B2
func newBookingID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("SA%d%s", now.UnixMilli(), suffix)
}
