package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cx-tal-miterani/scenic-airways/internal/catalog"
	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/cx-tal-miterani/scenic-airways/internal/pricing"
	"github.com/spf13/cobra"
)

func newSearchCommand(st *state) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find flights by departure and arrival",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flights, err := st.session.Workflow.Search(cmd.Context(), models.SearchFilters{Departure: from, Arrival: to})
			if err != nil {
				return err
			}
			if st.jsonOutput {
				return st.printJSON(cmd.OutOrStdout(), flights)
			}
			return printFlights(cmd.OutOrStdout(), flights)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Departure contains (case-insensitive)")
	cmd.Flags().StringVar(&to, "to", "", "Arrival contains (case-insensitive)")
	return cmd
}

func newBookCommand(st *state) *cobra.Command {
	var (
		from, to, flightID string
		seats, passengers  []string
	)
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Search, pick seats and confirm a booking in one step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			wf := st.session.Workflow

			if _, err := wf.Search(ctx, models.SearchFilters{Departure: from, Arrival: to}); err != nil {
				return err
			}
			if !wf.SelectFlight(flightID) {
				return fmt.Errorf("flight %s not found for --from %q --to %q", flightID, from, to)
			}
			for _, seatID := range seats {
				if err := wf.ToggleSeat(seatID); err != nil {
					return err
				}
			}
			if err := wf.ProceedToConfirm(); err != nil {
				return err
			}

			pax := make([]models.Passenger, 0, len(passengers))
			for _, name := range passengers {
				pax = append(pax, models.Passenger{Name: name})
			}
			flight, _ := wf.SelectedFlight()
			b, err := wf.Confirm(ctx, pax)
			if err != nil {
				return err
			}

			if st.jsonOutput {
				return st.printJSON(cmd.OutOrStdout(), b)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Booking %s confirmed: %s %s -> %s, seats %s, total %.2f\n",
				b.ID, flight.FlightNumber, flight.Departure, flight.Arrival,
				strings.Join(pricing.SeatNumbers(&flight, b.Seats), ", "), b.TotalPrice)
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Departure contains")
	cmd.Flags().StringVar(&to, "to", "", "Arrival contains")
	cmd.Flags().StringVar(&flightID, "flight", "", "Flight id from the search results")
	cmd.Flags().StringSliceVar(&seats, "seat", nil, "Seat id to book (repeatable)")
	cmd.Flags().StringArrayVar(&passengers, "passenger", nil, "Passenger name, one per seat (repeatable)")
	_ = cmd.MarkFlagRequired("flight")
	_ = cmd.MarkFlagRequired("seat")
	return cmd
}

func newBookingsCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List your bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bookings, err := st.session.Workflow.History(cmd.Context())
			if err != nil {
				return err
			}
			if st.jsonOutput {
				if bookings == nil {
					bookings = []models.Booking{}
				}
				return st.printJSON(cmd.OutOrStdout(), bookings)
			}
			return printBookings(cmd.Context(), cmd.OutOrStdout(), st.session.Catalog, bookings)
		},
	}
}

func printFlights(w io.Writer, flights []models.Flight) error {
	if len(flights) == 0 {
		_, err := fmt.Fprintln(w, "No flights found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFLIGHT\tFROM\tTO\tDATE\tDEPARTS\tARRIVES")
	for _, f := range flights {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			f.ID, f.FlightNumber, f.Departure, f.Arrival, f.Date, f.DepartureTime, f.ArrivalTime)
	}
	return tw.Flush()
}

// printBookings shows each booking with its flight resolved from the catalog.
// A flight the catalog no longer has is shown by id.
func printBookings(ctx context.Context, w io.Writer, flights catalog.Source, bookings []models.Booking) error {
	if len(bookings) == 0 {
		_, err := fmt.Fprintln(w, "No bookings")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFLIGHT\tSEATS\tTOTAL\tSTATUS\tDATE")
	for _, b := range bookings {
		flight := b.FlightID
		if flights != nil {
			f, err := flights.GetFlight(ctx, b.FlightID)
			switch {
			case err == nil:
				flight = fmt.Sprintf("%s %s -> %s", f.FlightNumber, f.Departure, f.Arrival)
			case !errors.Is(err, catalog.ErrNotFound):
				return fmt.Errorf("failed to load flight %s: %w", b.FlightID, err)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
			b.ID, flight, strings.Join(b.Seats, ","), b.TotalPrice, b.Status, b.BookingDate.Format("2006-01-02"))
	}
	return tw.Flush()
}
