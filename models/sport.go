package models

import "time"

// Sport is reference data shown on the first step of a booking.
type Sport struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name" validate:"required"`
	IconRef   string    `bson:"iconRef" json:"iconRef"` // asset key or URL of the sport icon
	CreatedAt time.Time `bson:"createdAt" json:"-"`
}
