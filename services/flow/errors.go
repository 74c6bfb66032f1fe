package flow

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is wrapped by every TransitionError.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrStaleResponse is returned for query results superseded by a newer query.
	ErrStaleResponse = errors.New("stale response")
)

// TransitionError rejects an event in the current step.
type TransitionError struct {
	From   Step
	Event  string
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s not allowed in %s: %s", e.Event, e.From, e.Reason)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

func reject(s State, e Event, reason string) error {
	return &TransitionError{From: s.Step, Event: e.eventName(), Reason: reason}
}
