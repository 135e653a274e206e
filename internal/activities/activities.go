package activities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/cx-tal-miterani/scenic-airways/internal/queue"
	"go.temporal.io/sdk/activity"
)

// ConfirmationCodePrefix marks codes issued by IssueConfirmation
const ConfirmationCodePrefix = "SCN"

// EventPublisher sends booking events to the broker
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error
}

// Activities holds dependencies for the confirmation activities
type Activities struct {
	publisher EventPublisher
}

// NewActivities creates activities. A nil publisher makes publishing a no-op.
func NewActivities(publisher EventPublisher) *Activities {
	return &Activities{publisher: publisher}
}

// IssueConfirmation derives the passenger facing confirmation code for a booking
func (a *Activities) IssueConfirmation(ctx context.Context, input models.ConfirmationWorkflowInput) (*models.IssueConfirmationResult, error) {
	logger := activity.GetLogger(ctx)

	id := input.Booking.ID
	if id == "" {
		return nil, errors.New("booking id is required")
	}
	if len(input.Booking.Seats) == 0 {
		return nil, fmt.Errorf("booking %s has no seats", id)
	}

	suffix := id
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	code := ConfirmationCodePrefix + strings.ToUpper(suffix)

	logger.Info("Confirmation issued", "bookingId", id, "code", code)
	return &models.IssueConfirmationResult{ConfirmationCode: code}, nil
}

// PublishBookingConfirmed sends the booking.confirmed event
func (a *Activities) PublishBookingConfirmed(ctx context.Context, input models.PublishBookingConfirmedInput) error {
	logger := activity.GetLogger(ctx)

	if a.publisher == nil {
		logger.Info("No publisher configured, skipping event", "bookingId", input.Confirmation.Booking.ID)
		return nil
	}

	event := queue.NewBookingConfirmedEvent(input.Confirmation, input.ConfirmationCode)
	if err := a.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		logger.Error("Failed to publish booking event", "bookingId", event.BookingID, "error", err)
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	logger.Info("Booking event published", "bookingId", event.BookingID)
	return nil
}
