package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/cx-tal-miterani/scenic-airways/internal/catalog"
	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSession struct {
	user *models.User
}

func (s stubSession) CurrentUser() (models.User, bool) {
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

type recordingNotifier struct {
	bookings []models.Booking
	flights  []models.Flight
	err      error
}

func (r *recordingNotifier) BookingConfirmed(ctx context.Context, b models.Booking, f models.Flight) error {
	r.bookings = append(r.bookings, b)
	r.flights = append(r.flights, f)
	return r.err
}

var testUser = &models.User{ID: "user-1", Username: "user", Role: models.RoleUser}

func testFlights() []models.Flight {
	return []models.Flight{
		{
			ID: "F", FlightNumber: "SA001", Departure: "London (LHR)", Arrival: "Paris (CDG)",
			SeatLayout: []models.Row{
				{Seats: []models.Seat{{ID: "1A", SeatNumber: "1A", Price: 500}, {ID: "1B", SeatNumber: "1B", Price: 600}}},
			},
		},
		{
			ID: "G", FlightNumber: "SA002", Departure: "Delhi", Arrival: "Leh",
			SeatLayout: []models.Row{
				{Seats: []models.Seat{{ID: "1A", SeatNumber: "1A", Price: 100}}},
			},
		},
		{
			ID: "H", FlightNumber: "SA003", Departure: "london (LGW)", Arrival: "PARIS (ORY)",
			SeatLayout: []models.Row{
				{Seats: []models.Seat{{ID: "1A", SeatNumber: "1A", Price: 200}}},
			},
		},
		{
			ID: "I", FlightNumber: "SA004", Departure: "Paris (CDG)", Arrival: "London (LHR)",
		},
	}
}

func newTestWorkflow(t *testing.T, user *models.User, opts ...Option) (*Workflow, *recordingNotifier) {
	t.Helper()
	src, err := catalog.NewMemory(testFlights(), catalog.SampleBookings())
	require.NoError(t, err)

	n := &recordingNotifier{}
	opts = append([]Option{WithNotifier(n)}, opts...)
	return NewWorkflow(src, stubSession{user: user}, opts...), n
}

func flightIDs(flights []models.Flight) []string {
	ids := make([]string, len(flights))
	for i, f := range flights {
		ids[i] = f.ID
	}
	return ids
}

func selectF(t *testing.T, w *Workflow) {
	t.Helper()
	_, err := w.Search(context.Background(), models.SearchFilters{Departure: "lon", Arrival: "par"})
	require.NoError(t, err)
	require.True(t, w.SelectFlight("F"))
}

func TestWorkflow_Search(t *testing.T) {
	tests := []struct {
		name     string
		filters  models.SearchFilters
		expected []string
	}{
		{name: "case insensitive substring", filters: models.SearchFilters{Departure: "Lon", Arrival: "Par"}, expected: []string{"F", "H"}},
		{name: "empty filters match all", filters: models.SearchFilters{}, expected: []string{"F", "G", "H", "I"}},
		{name: "departure only", filters: models.SearchFilters{Departure: "PARIS"}, expected: []string{"I"}},
		{name: "no match", filters: models.SearchFilters{Departure: "Tokyo"}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestWorkflow(t, testUser)

			results, err := w.Search(context.Background(), tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, flightIDs(results))
			assert.Equal(t, tt.expected, flightIDs(w.Results()))
			assert.Equal(t, models.DashboardStateSearching, w.State())
		})
	}
}

func TestWorkflow_SearchDoesNotMutateSource(t *testing.T) {
	w, _ := newTestWorkflow(t, testUser)
	ctx := context.Background()

	results, err := w.Search(ctx, models.SearchFilters{Departure: "Lon"})
	require.NoError(t, err)
	results[0].Departure = "changed"

	again, err := w.Search(ctx, models.SearchFilters{Departure: "Lon"})
	require.NoError(t, err)
	assert.Equal(t, "London (LHR)", again[0].Departure)
}

func TestWorkflow_SelectFlight(t *testing.T) {
	w, _ := newTestWorkflow(t, testUser)
	ctx := context.Background()

	_, err := w.Search(ctx, models.SearchFilters{Departure: "Lon", Arrival: "Par"})
	require.NoError(t, err)

	// G exists in the catalog but not in the current results.
	assert.False(t, w.SelectFlight("G"))
	assert.Equal(t, models.DashboardStateSearching, w.State())
	_, ok := w.SelectedFlight()
	assert.False(t, ok)

	assert.True(t, w.SelectFlight("H"))
	assert.Equal(t, models.DashboardStateSelectingSeats, w.State())
	require.NoError(t, w.ToggleSeat("1A"))

	// Switching flights starts a fresh selection.
	assert.True(t, w.SelectFlight("F"))
	f, ok := w.SelectedFlight()
	require.True(t, ok)
	assert.Equal(t, "F", f.ID)
	assert.Empty(t, w.SelectedSeats())
}

func TestWorkflow_SeatTotals(t *testing.T) {
	w, _ := newTestWorkflow(t, testUser)
	selectF(t, w)

	assert.Equal(t, 0.0, w.TotalPrice())

	require.NoError(t, w.ToggleSeat("1A"))
	require.NoError(t, w.ToggleSeat("1B"))
	assert.Equal(t, 1100.0, w.TotalPrice())
	assert.Equal(t, []string{"1A", "1B"}, w.SelectedSeats())

	require.NoError(t, w.ToggleSeat("1A"))
	assert.Equal(t, 600.0, w.TotalPrice())
	assert.Equal(t, []string{"1B"}, w.SelectedSeats())
}

func TestWorkflow_DoubleToggleRestoresTotal(t *testing.T) {
	for _, seat := range []string{"1A", "1B", "ghost"} {
		t.Run(seat, func(t *testing.T) {
			w, _ := newTestWorkflow(t, testUser)
			selectF(t, w)
			require.NoError(t, w.ToggleSeat("1B"))

			before := w.TotalPrice()
			beforeSeats := w.SelectedSeats()

			require.NoError(t, w.ToggleSeat(seat))
			require.NoError(t, w.ToggleSeat(seat))

			assert.Equal(t, before, w.TotalPrice())
			assert.ElementsMatch(t, beforeSeats, w.SelectedSeats())
		})
	}
}

func TestWorkflow_UnknownSeatContributesZero(t *testing.T) {
	w, _ := newTestWorkflow(t, testUser)
	selectF(t, w)

	require.NoError(t, w.ToggleSeat("1A"))
	require.NoError(t, w.ToggleSeat("99Z"))

	assert.Equal(t, 500.0, w.TotalPrice())
	assert.Equal(t, []string{"1A", ""}, w.View().SeatNumbers)
}

func TestWorkflow_ToggleSeatRequiresFlight(t *testing.T) {
	w, _ := newTestWorkflow(t, testUser)
	assert.ErrorIs(t, w.ToggleSeat("1A"), ErrInvalidState)
}

func TestWorkflow_BackToResults(t *testing.T) {
	w, _ := newTestWorkflow(t, testUser)
	selectF(t, w)
	require.NoError(t, w.ToggleSeat("1A"))

	require.NoError(t, w.BackToResults())

	assert.Equal(t, models.DashboardStateSearching, w.State())
	_, ok := w.SelectedFlight()
	assert.False(t, ok)
	assert.Empty(t, w.SelectedSeats())
	assert.Equal(t, []string{"F", "H"}, flightIDs(w.Results()))

	assert.ErrorIs(t, w.BackToResults(), ErrInvalidState)
}

func TestWorkflow_ProceedToConfirm(t *testing.T) {
	w, _ := newTestWorkflow(t, testUser)
	assert.ErrorIs(t, w.ProceedToConfirm(), ErrInvalidState)

	selectF(t, w)
	assert.ErrorIs(t, w.ProceedToConfirm(), ErrNoSeatsSelected)

	require.NoError(t, w.ToggleSeat("1B"))
	require.NoError(t, w.ProceedToConfirm())
	assert.Equal(t, models.DashboardStateConfirming, w.State())

	// The selection is frozen while the confirmation is open.
	assert.ErrorIs(t, w.ToggleSeat("1A"), ErrInvalidState)
	assert.False(t, w.SelectFlight("H"))
	_, err := w.Search(context.Background(), models.SearchFilters{})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestWorkflow_CancelConfirmation(t *testing.T) {
	w, n := newTestWorkflow(t, testUser)
	selectF(t, w)
	require.NoError(t, w.ToggleSeat("1A"))
	require.NoError(t, w.ProceedToConfirm())

	require.NoError(t, w.CancelConfirmation())

	assert.Equal(t, models.DashboardStateSearching, w.State())
	assert.Empty(t, w.SelectedSeats())
	assert.Equal(t, []string{"F", "H"}, flightIDs(w.Results()))
	assert.Empty(t, n.bookings)
	assert.ErrorIs(t, w.CancelConfirmation(), ErrInvalidState)
}

func TestWorkflow_Confirm(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	w, n := newTestWorkflow(t, testUser, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err := w.Confirm(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidState)

	selectF(t, w)
	require.NoError(t, w.ToggleSeat("1A"))
	require.NoError(t, w.ToggleSeat("1B"))
	require.NoError(t, w.ProceedToConfirm())

	passengers := []models.Passenger{{Name: "Ada", Age: 36}, {Name: "Charles", Age: 41}}
	b, err := w.Confirm(ctx, passengers)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^SA\d{13}[0-9A-F]{4}$`), b.ID)
	assert.Equal(t, "F", b.FlightID)
	assert.Equal(t, "user-1", b.UserID)
	assert.Equal(t, []string{"1A", "1B"}, b.Seats)
	assert.Equal(t, passengers, b.PassengerDetails)
	assert.Equal(t, 1100.0, b.TotalPrice)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.Equal(t, now, b.BookingDate)

	require.Len(t, n.bookings, 1)
	assert.Equal(t, b, n.bookings[0])
	assert.Equal(t, "SA001", n.flights[0].FlightNumber)

	assert.Equal(t, models.DashboardStateSearching, w.State())
	assert.Empty(t, w.SelectedSeats())
	_, ok := w.SelectedFlight()
	assert.False(t, ok)

	// Confirmed bookings are not added to history.
	history, err := w.History(ctx)
	require.NoError(t, err)
	for _, h := range history {
		assert.NotEqual(t, b.ID, h.ID)
	}
}

func TestWorkflow_ConfirmRequiresUser(t *testing.T) {
	w, n := newTestWorkflow(t, nil)
	selectF(t, w)
	require.NoError(t, w.ToggleSeat("1A"))
	require.NoError(t, w.ProceedToConfirm())

	_, err := w.Confirm(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, models.DashboardStateConfirming, w.State())
	assert.Empty(t, n.bookings)
}

func TestWorkflow_ConfirmSurvivesNotifierFailure(t *testing.T) {
	w, n := newTestWorkflow(t, testUser)
	n.err = errors.New("broker down")
	selectF(t, w)
	require.NoError(t, w.ToggleSeat("1A"))
	require.NoError(t, w.ProceedToConfirm())

	b, err := w.Confirm(context.Background(), []models.Passenger{{Name: "Ada"}})
	require.NoError(t, err)
	assert.Equal(t, 500.0, b.TotalPrice)
	assert.Equal(t, models.DashboardStateSearching, w.State())
}

func TestWorkflow_ConfirmRequiresOnePassengerPerSeat(t *testing.T) {
	tests := []struct {
		name       string
		passengers []models.Passenger
	}{
		{name: "none", passengers: nil},
		{name: "too few", passengers: []models.Passenger{{Name: "Ada"}}},
		{name: "too many", passengers: []models.Passenger{{Name: "Ada"}, {Name: "Charles"}, {Name: "Grace"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, n := newTestWorkflow(t, testUser)
			selectF(t, w)
			require.NoError(t, w.ToggleSeat("1A"))
			require.NoError(t, w.ToggleSeat("1B"))
			require.NoError(t, w.ProceedToConfirm())

			_, err := w.Confirm(context.Background(), tt.passengers)
			assert.ErrorIs(t, err, ErrPassengerCount)
			assert.Equal(t, models.DashboardStateConfirming, w.State())
			assert.Equal(t, []string{"1A", "1B"}, w.SelectedSeats())
			assert.Empty(t, n.bookings)
		})
	}
}

// blockingNotifier waits until its context ends
type blockingNotifier struct {
	err error
}

func (b *blockingNotifier) BookingConfirmed(ctx context.Context, _ models.Booking, _ models.Flight) error {
	<-ctx.Done()
	b.err = ctx.Err()
	return b.err
}

func TestWorkflow_ConfirmBoundsNotifier(t *testing.T) {
	n := &blockingNotifier{}
	w, _ := newTestWorkflow(t, testUser, WithNotifier(n), WithNotifyTimeout(20*time.Millisecond))
	selectF(t, w)
	require.NoError(t, w.ToggleSeat("1A"))
	require.NoError(t, w.ProceedToConfirm())

	start := time.Now()
	b, err := w.Confirm(context.Background(), []models.Passenger{{Name: "Ada"}})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.ErrorIs(t, n.err, context.DeadlineExceeded)
	assert.Equal(t, 500.0, b.TotalPrice)
	assert.Equal(t, models.DashboardStateSearching, w.State())
}

func TestWorkflow_History(t *testing.T) {
	w, _ := newTestWorkflow(t, testUser)
	history, err := w.History(context.Background())
	require.NoError(t, err)
	assert.Len(t, history, 2)

	anon, _ := newTestWorkflow(t, nil)
	_, err = anon.History(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestWorkflow_View(t *testing.T) {
	w, _ := newTestWorkflow(t, testUser)
	v := w.View()
	assert.Equal(t, models.DashboardStateSearching, v.State)
	assert.Nil(t, v.SelectedFlight)
	assert.NotNil(t, v.Results)
	assert.NotNil(t, v.SelectedSeats)

	selectF(t, w)
	require.NoError(t, w.ToggleSeat("1B"))

	v = w.View()
	assert.Equal(t, models.DashboardStateSelectingSeats, v.State)
	require.NotNil(t, v.SelectedFlight)
	assert.Equal(t, "F", v.SelectedFlight.ID)
	assert.Equal(t, []string{"1B"}, v.SelectedSeats)
	assert.Equal(t, []string{"1B"}, v.SeatNumbers)
	assert.Equal(t, 600.0, v.TotalPrice)
}
