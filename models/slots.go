package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used across the API.
const DateLayout = "2006-01-02"

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotBlocked   SlotStatus = "blocked"
)

// Slot is one bookable interval of a facility on a date.
type Slot struct {
	Time          string     `bson:"time" json:"time"`   // "18:00"
	Label         string     `bson:"label" json:"label"` // "18:00 - 19:00"
	Status        SlotStatus `bson:"status" json:"status"`
	ReservationID string     `bson:"reservationId,omitempty" json:"-"`
	BlockReason   string     `bson:"blockReason,omitempty" json:"-"`
}

func (s Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// FacilityDay stores every slot of one facility on one date. A single document
// lets a reservation flip several slots in one conditional update.
type FacilityDay struct {
	ID         string    `bson:"id" json:"id"`
	FacilityID string    `bson:"facilityId" json:"facilityId"`
	Date       string    `bson:"date" json:"date"`
	Slots      []Slot    `bson:"slots" json:"slots"`
	Version    int       `bson:"version" json:"version"`
	CreatedAt  time.Time `bson:"createdAt" json:"-"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"-"`
}

// Slot looks up a slot by its start time.
func (d FacilityDay) Slot(t string) (Slot, bool) {
	for _, s := range d.Slots {
		if s.Time == t {
			return s, true
		}
	}
	return Slot{}, false
}

// Unavailable returns the requested times that are missing or not available.
func (d FacilityDay) Unavailable(times []string) []string {
	var out []string
	for _, t := range times {
		if s, ok := d.Slot(t); !ok || !s.IsAvailable() {
			out = append(out, t)
		}
	}
	return out
}

// GenerateSlots lays out the day's slots from the facility's opening hours.
func GenerateSlots(f Facility) []Slot {
	f.ApplyDefaults()
	var slots []Slot
	for start := f.OpenHour * 60; start+f.SlotMinutes <= f.CloseHour*60; start += f.SlotMinutes {
		slots = append(slots, Slot{
			Time:   clock(start),
			Label:  SlotLabel(start, f.SlotMinutes),
			Status: SlotAvailable,
		})
	}
	return slots
}

// SlotLabel renders "HH:MM - HH:MM" for a slot starting at the given minute of day.
func SlotLabel(startMinute, length int) string {
	return fmt.Sprintf("%s - %s", clock(startMinute), clock(startMinute+length))
}

// ParseClock converts "HH:MM" to minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid slot time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
