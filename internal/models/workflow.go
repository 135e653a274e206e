package models

// ConfirmationWorkflowInput is the input for the booking confirmation workflow
type ConfirmationWorkflowInput struct {
	Booking       Booking  `json:"booking"`
	FlightNumber  string   `json:"flightNumber"`
	Departure     string   `json:"departure"`
	Arrival       string   `json:"arrival"`
	Date          string   `json:"date"`
	DepartureTime string   `json:"departureTime"`
	SeatNumbers   []string `json:"seatNumbers"`
}

// ConfirmationWorkflowResult is the result of the booking confirmation workflow
type ConfirmationWorkflowResult struct {
	BookingID        string `json:"bookingId"`
	ConfirmationCode string `json:"confirmationCode"`
	Published        bool   `json:"published"`
	FailureReason    string `json:"failureReason,omitempty"`
}

// Activity names registered by the worker
const (
	ActivityIssueConfirmation       = "IssueConfirmation"
	ActivityPublishBookingConfirmed = "PublishBookingConfirmed"
	WorkflowConfirmation            = "ConfirmationWorkflow"
)

// Activity results
type IssueConfirmationResult struct {
	ConfirmationCode string `json:"confirmationCode"`
}

type PublishBookingConfirmedInput struct {
	Confirmation     ConfirmationWorkflowInput `json:"confirmation"`
	ConfirmationCode string                    `json:"confirmationCode"`
}
