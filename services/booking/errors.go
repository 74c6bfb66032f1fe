package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFacilityNotFound    = errors.New("facility not found")
	ErrFacilityInactive    = errors.New("facility is not taking bookings")
	ErrSportMismatch       = errors.New("facility does not offer the selected sport")
	ErrInvalidDate         = errors.New("date must be formatted YYYY-MM-DD")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSessionNotFound     = errors.New("booking session not found or expired")
	ErrSessionBusy         = errors.New("booking session is being updated, try again")
	ErrSlotNotFound        = errors.New("slot not found")
	ErrSlotBooked          = errors.New("slot is booked and cannot be blocked")
)

// ConflictError reports the slots that were taken before the reservation
// could be written.
type ConflictError struct {
	Times []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slots no longer available: %s", strings.Join(e.Times, ", "))
}
