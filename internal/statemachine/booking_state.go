package statemachine

import (
	"fmt"

	"careconnect/internal/models"
)

// validTransitions is the authoritative booking state machine: the happy path
// advances pending -> confirmed -> in_progress -> completed, and cancellation
// is reachable from any non-terminal state. completed and cancelled are
// terminal.
var validTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:    {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed:  {models.BookingInProgress, models.BookingCancelled},
	models.BookingInProgress: {models.BookingCompleted, models.BookingCancelled},
	models.BookingCompleted:  {},
	models.BookingCancelled:  {},
}

// InvalidTransitionError reports a rejected status change together with the
// legal alternatives, so API clients can self-correct.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	nexts := ValidTransitionsFrom(e.From)
	if len(nexts) == 0 {
		return fmt.Sprintf("invalid transition: %s is a terminal state", e.From)
	}
	return fmt.Sprintf("invalid transition: %s -> %s; valid next states are %v", e.From, e.To, nexts)
}

// IsKnownStatus reports whether s is one of the five enumerated statuses.
func IsKnownStatus(s models.BookingStatus) bool {
	_, ok := validTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is possible from s.
func IsTerminal(s models.BookingStatus) bool {
	return IsKnownStatus(s) && len(validTransitions[s]) == 0
}

// ValidTransitionsFrom returns the statuses reachable from the given one.
func ValidTransitionsFrom(from models.BookingStatus) []models.BookingStatus {
	return validTransitions[from]
}

// CanTransition validates a proposed status change against the transition
// table. A no-op (from == to) is rejected like any other illegal move.
func CanTransition(from, to models.BookingStatus) error {
	for _, next := range validTransitions[from] {
		if next == to {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to}
}
