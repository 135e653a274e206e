package workflows

import (
	"time"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	// TaskQueue is the default queue the worker polls
	TaskQueue = "scenic-booking-queue"
	// WorkflowIDPrefix prefixes the booking id to form the workflow id
	WorkflowIDPrefix = "booking-confirmation-"
	// PublishTimeout bounds a single broker publish
	PublishTimeout = 10 * time.Second
)

// ConfirmationWorkflow issues a confirmation code for a confirmed booking and
// publishes the booking.confirmed event. A publish failure is reported in the
// result; the booking itself stays confirmed.
func ConfirmationWorkflow(ctx workflow.Context, input models.ConfirmationWorkflowInput) (*models.ConfirmationWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Confirmation workflow started", "bookingId", input.Booking.ID)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	})

	result := &models.ConfirmationWorkflowResult{BookingID: input.Booking.ID}

	var issued models.IssueConfirmationResult
	if err := workflow.ExecuteActivity(ctx, models.ActivityIssueConfirmation, input).Get(ctx, &issued); err != nil {
		logger.Error("Failed to issue confirmation", "error", err)
		return nil, err
	}
	result.ConfirmationCode = issued.ConfirmationCode

	publishCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: PublishTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumAttempts:    5,
		},
	})
	err := workflow.ExecuteActivity(publishCtx, models.ActivityPublishBookingConfirmed, models.PublishBookingConfirmedInput{
		Confirmation:     input,
		ConfirmationCode: issued.ConfirmationCode,
	}).Get(ctx, nil)
	if err != nil {
		logger.Warn("Booking event not published", "bookingId", input.Booking.ID, "error", err)
		result.FailureReason = err.Error()
		return result, nil
	}

	result.Published = true
	logger.Info("Confirmation workflow completed", "bookingId", input.Booking.ID, "code", result.ConfirmationCode)
	return result, nil
}
