// Package notify delivers confirmed bookings to the systems that act on them:
// a Temporal confirmation workflow or the booking.confirmed queue directly.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/cx-tal-miterani/scenic-airways/internal/pricing"
	"github.com/cx-tal-miterani/scenic-airways/internal/queue"
	"github.com/cx-tal-miterani/scenic-airways/internal/workflows"
	"go.temporal.io/sdk/client"
)

// Input builds the confirmation workflow input for a booking
func Input(b models.Booking, f models.Flight) models.ConfirmationWorkflowInput {
	return models.ConfirmationWorkflowInput{
		Booking:       b,
		FlightNumber:  f.FlightNumber,
		Departure:     f.Departure,
		Arrival:       f.Arrival,
		Date:          f.Date,
		DepartureTime: f.DepartureTime,
		SeatNumbers:   pricing.SeatNumbers(&f, b.Seats),
	}
}

// Temporal starts a ConfirmationWorkflow per booking
type Temporal struct {
	client    client.Client
	taskQueue string
	logger    *slog.Logger
}

func NewTemporal(c client.Client, taskQueue string, logger *slog.Logger) *Temporal {
	if taskQueue == "" {
		taskQueue = workflows.TaskQueue
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Temporal{client: c, taskQueue: taskQueue, logger: logger}
}

func (t *Temporal) BookingConfirmed(ctx context.Context, b models.Booking, f models.Flight) error {
	opts := client.StartWorkflowOptions{
		ID:        workflows.WorkflowIDPrefix + b.ID,
		TaskQueue: t.taskQueue,
	}
	if _, err := t.client.ExecuteWorkflow(ctx, opts, models.WorkflowConfirmation, Input(b, f)); err != nil {
		return fmt.Errorf("failed to start confirmation workflow: %w", err)
	}
	t.logger.Info("Started confirmation workflow", "workflowId", opts.ID, "bookingId", b.ID)
	return nil
}

// Publisher is implemented by queue.Publisher
type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error
}

// Queue publishes booking.confirmed directly, without a confirmation code.
// Used when Temporal is disabled but a broker is configured.
type Queue struct {
	publisher Publisher
}

func NewQueue(p Publisher) *Queue {
	return &Queue{publisher: p}
}

func (q *Queue) BookingConfirmed(ctx context.Context, b models.Booking, f models.Flight) error {
	return q.publisher.PublishBookingConfirmed(ctx, queue.NewBookingConfirmedEvent(Input(b, f), ""))
}
