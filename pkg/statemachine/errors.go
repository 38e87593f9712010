package statemachine

import (
	"errors"
	"fmt"
)

// ErrUnknownState is returned when a state is not part of the lifecycle table.
var ErrUnknownState = errors.New("unknown lifecycle state")

// InvalidTransitionError indicates the transition table forbids moving from
// the current state to the requested one.
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transition from state '%s' to '%s' is not allowed", e.From, e.To)
}

func NewInvalidTransitionError(from, to State) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func IsInvalidTransitionError(err error) bool {
	var e *InvalidTransitionError
	return errors.As(err, &e)
}
