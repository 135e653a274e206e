package workflows

import (
	"context"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"go.temporal.io/sdk/activity"
)

// Placeholders so the test environment knows the activity signatures; every
// test overrides them with OnActivity.
func issueStub(ctx context.Context, in models.ConfirmationWorkflowInput) (*models.IssueConfirmationResult, error) {
	return nil, nil
}

func publishStub(ctx context.Context, in models.PublishBookingConfirmedInput) error {
	return nil
}

func activityName(name string) activity.RegisterOptions {
	return activity.RegisterOptions{Name: name}
}
