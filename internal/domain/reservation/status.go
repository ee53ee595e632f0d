package reservation

import (
	"fmt"

	"github.com/staylodge/service-reservation/internal/common/domain"
)

// Status represents the current state of a reservation in its lifecycle.
// The string values are persisted as-is.
type Status string

const (
	StatusPending            Status = "Pending"
	StatusPaymentUnderReview Status = "PaymentUnderReview"
	StatusConfirmed          Status = "Confirmed"
	StatusCancelled          Status = "Cancelled"
	StatusCompleted          Status = "Completed"
)

// validTransitions defines the state machine for reservation status transitions.
var validTransitions = map[Status][]Status{
	StatusPending:            {StatusPaymentUnderReview, StatusConfirmed, StatusCancelled},
	StatusPaymentUnderReview: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:          {StatusCompleted, StatusCancelled},
	StatusCancelled:          {},
	StatusCompleted:          {},
}

// AllStatuses lists every known status in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusPaymentUnderReview, StatusConfirmed, StatusCancelled, StatusCompleted}
}

// IsValid returns true if the status is a recognized reservation status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an InvalidStatus validation error if unknown.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", domain.NewValidationErrorWithCode(domain.CodeInvalidStatus, fmt.Sprintf("invalid reservation status: %q", s))
	}
	return status, nil
}
