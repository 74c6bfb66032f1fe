package models

import "time"

const ReservationConfirmed = "confirmed"

// Reservation is the persisted result of a submitted booking. It is never
// updated after creation.
type Reservation struct {
	ID           string      `bson:"id" json:"id"`
	UserID       string      `bson:"userId" json:"userId"`
	SportID      string      `bson:"sportId" json:"sportId"`
	FacilityID   string      `bson:"facilityId" json:"facilityId"`
	FacilityName string      `bson:"facilityName" json:"facilityName"`
	Date         string      `bson:"date" json:"date"`
	SlotTimes    []string    `bson:"slotTimes" json:"slotTimes"`
	Participant  Participant `bson:"participant" json:"participant"`
	Amount       float64     `bson:"amount" json:"amount"`
	Currency     string      `bson:"currency" json:"currency"`
	Status       string      `bson:"status" json:"status"`
	CreatedAt    time.Time   `bson:"createdAt" json:"createdAt"`
}

// ReservationRequest is the creation payload.
type ReservationRequest struct {
	SportID     string      `json:"sportId" validate:"required"`
	FacilityID  string      `json:"facilityId" validate:"required"`
	Date        string      `json:"date" validate:"required,datetime=2006-01-02"`
	SlotTimes   []string    `json:"slotTimes" validate:"required,min=1,dive,datetime=15:04"`
	Participant Participant `json:"participant"`
}

// ReservationResponse is returned on successful creation.
type ReservationResponse struct {
	ReservationID string `json:"reservationId"`
	Status        string `json:"status"`
}

// Receipt is the confirmation summary shown after a booking.
type Receipt struct {
	ReservationID string   `json:"reservationId"`
	Status        string   `json:"status"`
	FacilityName  string   `json:"facilityName"`
	Date          string   `json:"date"`
	SlotTimes     []string `json:"slotTimes"`
	ParentName    string   `json:"parentName"`
	PlayerName    string   `json:"playerName"`
	Mobile        string   `json:"mobile"`
	Amount        float64  `json:"amount"`
	Currency      string   `json:"currency"`
}

func (r Reservation) Receipt() Receipt {
	return Receipt{
		ReservationID: r.ID,
		Status:        r.Status,
		FacilityName:  r.FacilityName,
		Date:          r.Date,
		SlotTimes:     r.SlotTimes,
		ParentName:    r.Participant.ParentName,
		PlayerName:    r.Participant.PlayerName,
		Mobile:        r.Participant.Mobile,
		Amount:        r.Amount,
		Currency:      r.Currency,
	}
}

// ReservationFilter narrows admin listings.
type ReservationFilter struct {
	UserID     string
	FacilityID string
	Date       string
	Limit      int64
}
