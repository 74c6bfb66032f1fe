package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"turfacademy/models"
)

var (
	ErrDayNotFound  = errors.New("no slots generated for facility and date")
	ErrSlotNotFound = errors.New("slot not found")
	ErrSlotBooked   = errors.New("slot is already booked")
)

// ErrWriteConflict means a reservation lost a write race on the day document
// while its slots stayed free. Retrying with the same input is safe.
var ErrWriteConflict = errors.New("reservation write conflicted with a concurrent update")

// UnavailableError is returned by ReserveSlots when at least one requested
// slot was not available at commit time.
type UnavailableError struct {
	Times []string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("slots no longer available: %s", strings.Join(e.Times, ", "))
}

// SlotRepository stores one FacilityDay document per facility and date.
type SlotRepository interface {
	GetDay(ctx context.Context, facilityID, date string) (*models.FacilityDay, error)
	// EnsureDay returns the day, generating it from the facility's hours on first use.
	EnsureDay(ctx context.Context, facility models.Facility, date string) (*models.FacilityDay, error)
	// ReserveSlots flips every requested slot from available to booked and
	// inserts the reservation, atomically.
	ReserveSlots(ctx context.Context, reservation *models.Reservation) error
	SetBlocked(ctx context.Context, facilityID, date, slotTime string, blocked bool, reason string) error
	EnsureIndexes(ctx context.Context) error
}
