package models

import "time"

type FacilityStatus string

const (
	FacilityActive   FacilityStatus = "active"
	FacilityInactive FacilityStatus = "inactive"
)

// Facility is a bookable turf or court. Its opening hours and slot length
// drive slot generation for a date.
type Facility struct {
	ID          string         `bson:"id" json:"id"`
	Name        string         `bson:"name" json:"name" validate:"required"`
	HourlyRate  float64        `bson:"hourlyRate" json:"hourlyRate" validate:"gt=0"`
	Status      FacilityStatus `bson:"status" json:"status" validate:"omitempty,oneof=active inactive"`
	SportIDs    []string       `bson:"sportIds" json:"sportIds" validate:"required,min=1"`
	OpenHour    int            `bson:"openHour" json:"openHour,omitempty" validate:"gte=0,lte=23"`
	CloseHour   int            `bson:"closeHour" json:"closeHour,omitempty" validate:"gte=0,lte=24"`
	SlotMinutes int            `bson:"slotMinutes" json:"slotMinutes,omitempty" validate:"omitempty,oneof=30 60 90 120"`
	CreatedAt   time.Time      `bson:"createdAt" json:"-"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"-"`
}

const (
	DefaultOpenHour    = 6
	DefaultCloseHour   = 22
	DefaultSlotMinutes = 60
)

// ApplyDefaults fills zero-valued scheduling fields.
func (f *Facility) ApplyDefaults() {
	if f.Status == "" {
		f.Status = FacilityActive
	}
	if f.OpenHour == 0 && f.CloseHour == 0 {
		f.OpenHour, f.CloseHour = DefaultOpenHour, DefaultCloseHour
	}
	if f.SlotMinutes == 0 {
		f.SlotMinutes = DefaultSlotMinutes
	}
}

func (f Facility) IsActive() bool {
	return f.Status == FacilityActive
}

// Supports reports whether the facility is offered for the sport.
func (f Facility) Supports(sportID string) bool {
	for _, id := range f.SportIDs {
		if id == sportID {
			return true
		}
	}
	return false
}

// PriceFor returns the amount charged for the given number of slots.
func (f Facility) PriceFor(slots int) float64 {
	minutes := f.SlotMinutes
	if minutes == 0 {
		minutes = DefaultSlotMinutes
	}
	return f.HourlyRate * float64(minutes*slots) / 60
}
