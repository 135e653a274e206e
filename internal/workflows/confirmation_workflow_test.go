package workflows

import (
	"errors"
	"testing"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"
)

type ConfirmationWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite
	env *testsuite.TestWorkflowEnvironment
}

func (s *ConfirmationWorkflowTestSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
	s.env.RegisterActivityWithOptions(issueStub, activityName(models.ActivityIssueConfirmation))
	s.env.RegisterActivityWithOptions(publishStub, activityName(models.ActivityPublishBookingConfirmed))
}

func (s *ConfirmationWorkflowTestSuite) AfterTest(suiteName, testName string) {
	s.env.AssertExpectations(s.T())
}

func TestConfirmationWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(ConfirmationWorkflowTestSuite))
}

func testInput() models.ConfirmationWorkflowInput {
	return models.ConfirmationWorkflowInput{
		Booking: models.Booking{
			ID:         "SA1760000000000AB12",
			FlightID:   "FL001",
			UserID:     "user-1",
			Seats:      []string{"1A", "1B"},
			TotalPrice: 1100,
			Status:     models.BookingStatusConfirmed,
		},
		FlightNumber: "SA101",
	}
}

func (s *ConfirmationWorkflowTestSuite) TestWorkflow_Published() {
	s.env.OnActivity(models.ActivityIssueConfirmation, mock.Anything, mock.Anything).
		Return(&models.IssueConfirmationResult{ConfirmationCode: "SCN00AB12"}, nil)
	s.env.OnActivity(models.ActivityPublishBookingConfirmed, mock.Anything, mock.MatchedBy(func(in models.PublishBookingConfirmedInput) bool {
		return in.ConfirmationCode == "SCN00AB12" && in.Confirmation.Booking.ID == "SA1760000000000AB12"
	})).Return(nil)

	s.env.ExecuteWorkflow(ConfirmationWorkflow, testInput())

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result models.ConfirmationWorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.True(result.Published)
	s.Equal("SCN00AB12", result.ConfirmationCode)
	s.Equal("SA1760000000000AB12", result.BookingID)
}

func (s *ConfirmationWorkflowTestSuite) TestWorkflow_PublishFails() {
	s.env.OnActivity(models.ActivityIssueConfirmation, mock.Anything, mock.Anything).
		Return(&models.IssueConfirmationResult{ConfirmationCode: "SCN00AB12"}, nil)
	s.env.OnActivity(models.ActivityPublishBookingConfirmed, mock.Anything, mock.Anything).
		Return(errors.New("broker down"))

	s.env.ExecuteWorkflow(ConfirmationWorkflow, testInput())

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result models.ConfirmationWorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.False(result.Published)
	s.Equal("SCN00AB12", result.ConfirmationCode)
	s.Contains(result.FailureReason, "broker down")
}

func (s *ConfirmationWorkflowTestSuite) TestWorkflow_IssueFails() {
	s.env.OnActivity(models.ActivityIssueConfirmation, mock.Anything, mock.Anything).
		Return(nil, errors.New("no seats"))

	s.env.ExecuteWorkflow(ConfirmationWorkflow, testInput())

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}
